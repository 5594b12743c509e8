package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"reviewroom/internal/app/client/config"
	"reviewroom/internal/domain/record"
)

const roomTokenHeader = "X-Room-Token"

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:    client,
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "ReviewRoom-Client/1.0",
	}
}

// SetToken sets the bearer token sent with every following request.
func (h *httpClient) SetToken(token string) {
	h.token = token
}

func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Register(ctx context.Context, username, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/user/register", credentials{username, password}, nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/user/login", credentials{username, password}, nil)
	if err != nil {
		return "", err
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := h.parseResponse(resp, &loginResp); err != nil {
		return "", err
	}
	return loginResp.Token, nil
}

func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/user/logout", nil, nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) ListRecords(ctx context.Context) ([]record.Record, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/records", nil, nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		Records []record.Record `json:"records"`
	}
	if err := h.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}
	return listResp.Records, nil
}

func (h *httpClient) CreateRecord(ctx context.Context, d record.Draft) (uuid.UUID, error) {
	req := struct {
		Type        record.Type `json:"type"`
		Title       string      `json:"title"`
		CreatorName string      `json:"creator_name,omitempty"`
		ReleaseDate string      `json:"release_date,omitempty"`
		Genre       string      `json:"genre,omitempty"`
		ImageURL    string      `json:"image_url,omitempty"`
		Rating      int         `json:"rating,omitempty"`
		Review      string      `json:"review,omitempty"`
	}{d.Type, d.Title, d.CreatorName, d.ReleaseDate, d.Genre, d.ImageURL, d.Rating, d.Review}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/records", req, nil)
	if err != nil {
		return uuid.Nil, err
	}

	var createResp struct {
		ID uuid.UUID `json:"id"`
	}
	if err := h.parseResponse(resp, &createResp); err != nil {
		return uuid.Nil, err
	}
	return createResp.ID, nil
}

func (h *httpClient) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/v1/records/"+id.String(), nil, nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Search(ctx context.Context, kind record.Type, query string) ([]record.Candidate, error) {
	params := url.Values{}
	params.Set("kind", kind.String())
	params.Set("q", query)

	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/search?"+params.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var searchResp struct {
		Candidates []record.Candidate `json:"candidates"`
	}
	if err := h.parseResponse(resp, &searchResp); err != nil {
		return nil, err
	}
	return searchResp.Candidates, nil
}

func (h *httpClient) CreateRoom(ctx context.Context, name, password string, ids []uuid.UUID) (CreatedRoom, error) {
	recordIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		recordIDs = append(recordIDs, id.String())
	}

	req := struct {
		Name      string   `json:"name"`
		Password  string   `json:"password,omitempty"`
		RecordIDs []string `json:"record_ids"`
	}{name, password, recordIDs}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/rooms", req, nil)
	if err != nil {
		return CreatedRoom{}, err
	}

	var created CreatedRoom
	if err := h.parseResponse(resp, &created); err != nil {
		return CreatedRoom{}, err
	}
	return created, nil
}

func (h *httpClient) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/rooms", nil, nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		Rooms []RoomSummary `json:"rooms"`
	}
	if err := h.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}
	return listResp.Rooms, nil
}

func (h *httpClient) GetRoom(ctx context.Context, id uuid.UUID) (RoomSummary, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/rooms/"+id.String(), nil, nil)
	if err != nil {
		return RoomSummary{}, err
	}

	var summary RoomSummary
	if err := h.parseResponse(resp, &summary); err != nil {
		return RoomSummary{}, err
	}
	return summary, nil
}

func (h *httpClient) UnlockRoom(ctx context.Context, id uuid.UUID, password string) (string, error) {
	req := struct {
		Password string `json:"password"`
	}{password}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/rooms/"+id.String()+"/unlock", req, nil)
	if err != nil {
		return "", err
	}

	var unlockResp struct {
		Token string `json:"token"`
	}
	if err := h.parseResponse(resp, &unlockResp); err != nil {
		return "", err
	}
	return unlockResp.Token, nil
}

func (h *httpClient) RoomRecords(ctx context.Context, id uuid.UUID, roomToken string) (RoomView, error) {
	var headers map[string]string
	if roomToken != "" {
		headers = map[string]string{roomTokenHeader: roomToken}
	}

	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/rooms/"+id.String()+"/records", nil, headers)
	if err != nil {
		return RoomView{}, err
	}

	var view RoomView
	if err := h.parseResponse(resp, &view); err != nil {
		return RoomView{}, err
	}
	return view, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	h.log.Debug("sending request", slog.String("method", method), slog.String("url", req.URL.String()))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("received response", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(body)))

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		_ = json.Unmarshal(body, &errResp)

		detail := errResp.Detail
		if detail == "" {
			detail = errResp.Error
		}
		return &ServerError{Status: resp.StatusCode, Detail: detail}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
