package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	healthAPI "reviewroom/internal/app/server/api/http/health"
	recordAPI "reviewroom/internal/app/server/api/http/record"
	roomAPI "reviewroom/internal/app/server/api/http/room"
	searchAPI "reviewroom/internal/app/server/api/http/search"
	userAPI "reviewroom/internal/app/server/api/http/user"
	"reviewroom/internal/app/server/config"
	"reviewroom/internal/infrastructure/storage"
	"reviewroom/internal/infrastructure/storage/filestore"
	"reviewroom/internal/utils/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:       config.EnvDev,
		Session:   config.Session{TTL: time.Hour},
		Search:    config.Search{Timeout: time.Second},
		RateLimit: config.RateLimit{UnlockRequests: 100, UnlockWindow: time.Minute},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	backend, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	store := storage.New(backend, storage.PolicyFail, logger.Discard())

	srv := httptest.NewServer(New(store, cfg, logger.Discard()))
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t    *testing.T
	base string
}

func (c client) do(method, path string, body any, headers map[string]string, out any) int {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestAPI_RoomSharingFlow(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := client{t: t, base: srv.URL}

	creds := map[string]string{"username": "alice", "password": "pw1"}
	assert.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/user/register", creds, nil, nil))
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/v1/user/register",
		map[string]string{"username": "alice", "password": "other"}, nil, nil))

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/user/login",
		map[string]string{"username": "alice", "password": "nope"}, nil, nil))

	var login userAPI.LoginResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/user/login", creds, nil, &login))
	require.NotEmpty(t, login.Token)
	auth := bearer(login.Token)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/records", nil, nil, nil))

	var heat, ronin recordAPI.CreateResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/records",
		map[string]any{"type": "movie", "title": "Heat", "rating": 5}, auth, &heat))
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/records",
		map[string]any{"type": "movie", "title": "Ronin"}, auth, &ronin))
	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/records",
		map[string]any{"type": "movie", "title": ""}, auth, nil))

	var ledger recordAPI.ListResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/records", nil, auth, &ledger))
	require.Len(t, ledger.Records, 2)
	assert.Equal(t, "Heat", ledger.Records[0].Title)
	assert.Equal(t, 3, ledger.Records[1].Rating)

	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/rooms",
		map[string]any{"name": "Empty", "record_ids": []string{}}, auth, nil))

	var created roomAPI.CreateResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/rooms", map[string]any{
		"name":       "Crime",
		"password":   "secret",
		"record_ids": []string{heat.ID.String(), ronin.ID.String()},
	}, auth, &created))
	roomPath := "/api/v1/rooms/" + created.ID.String()
	assert.Equal(t, "/?room_id="+created.ID.String(), created.Link)

	var summary roomAPI.Summary
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, roomPath, nil, nil, &summary))
	assert.True(t, summary.Protected)
	assert.Equal(t, 2, summary.RecordCount)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, roomPath+"/records", nil, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, roomPath+"/unlock",
		map[string]string{"password": "wrong"}, nil, nil))

	var unlocked roomAPI.UnlockResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, roomPath+"/unlock",
		map[string]string{"password": "secret"}, nil, &unlocked))
	roomToken := map[string]string{"X-Room-Token": unlocked.Token}

	var view roomAPI.RecordsResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, roomPath+"/records", nil, roomToken, &view))
	require.Len(t, view.Records, 2)
	assert.Equal(t, "Heat", view.Records[0].Title)

	// deleting a shared record leaves a dangling id that is skipped
	assert.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/v1/records/"+heat.ID.String(), nil, auth, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, roomPath+"/records", nil, roomToken, &view))
	require.Len(t, view.Records, 1)
	assert.Equal(t, "Ronin", view.Records[0].Title)

	var rooms roomAPI.ListResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/rooms", nil, auth, &rooms))
	require.Len(t, rooms.Rooms, 1)
	assert.Equal(t, "Crime", rooms.Rooms[0].Name)

	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/user/logout", nil, auth, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/records", nil, auth, nil))
}

func TestAPI_PublicRoomNeedsNoToken(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := client{t: t, base: srv.URL}

	creds := map[string]string{"username": "bob", "password": "pw"}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/user/register", creds, nil, nil))
	var login userAPI.LoginResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/user/login", creds, nil, &login))

	var dune recordAPI.CreateResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/records",
		map[string]any{"type": "book", "title": "Dune", "rating": 5}, bearer(login.Token), &dune))

	var created roomAPI.CreateResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/rooms", map[string]any{
		"name":       "SciFi Picks",
		"record_ids": []string{dune.ID.String()},
	}, bearer(login.Token), &created))

	var view roomAPI.RecordsResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/rooms/"+created.ID.String()+"/records", nil, nil, &view))
	require.Len(t, view.Records, 1)
	assert.Equal(t, "Dune", view.Records[0].Title)
	assert.Equal(t, 5, view.Records[0].Rating)
	assert.False(t, view.Room.Protected)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/rooms/not-a-room", nil, nil, nil))
}

func TestAPI_UnlockIsRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimit{UnlockRequests: 2, UnlockWindow: time.Minute}
	srv := newTestServer(t, cfg)
	c := client{t: t, base: srv.URL}

	path := "/api/v1/rooms/00000000-0000-4000-8000-000000000000/unlock"
	body := map[string]string{"password": "x"}

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, path, body, nil, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, path, body, nil, nil))
	assert.Equal(t, http.StatusTooManyRequests, c.do(http.MethodPost, path, body, nil, nil))

	// other routes are not throttled
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/health", nil, nil, nil))
}

func TestAPI_Metrics(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSchemaName_QualifiesByPackage(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{typ: reflect.TypeOf(recordAPI.CreateResponse{}), want: "RecordCreateResponse"},
		{typ: reflect.TypeOf(roomAPI.CreateResponse{}), want: "RoomCreateResponse"},
		{typ: reflect.TypeOf(&roomAPI.ListResponse{}), want: "RoomListResponse"},
		{typ: reflect.TypeOf(healthAPI.Response{}), want: "HealthResponse"},
		{typ: reflect.TypeOf(searchAPI.Response{}), want: "SearchResponse"},
		{typ: reflect.TypeOf(userAPI.StatusResponse{}), want: "UserStatusResponse"},
		{typ: reflect.TypeOf(recordAPI.Record{}), want: "Record"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, schemaName(tt.typ, ""))
	}

	anonymous := reflect.TypeOf(struct{ Password string }{})
	assert.Equal(t, "UnlockRequest", schemaName(anonymous, "UnlockRequest"))
}

func TestAPI_OpenAPIListsEveryBodySchema(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := http.Get(srv.URL + "/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))

	for _, name := range []string{
		"RecordCreateResponse", "RoomCreateResponse",
		"RecordListResponse", "RoomListResponse",
		"RecordStatusResponse", "UserStatusResponse",
		"HealthResponse", "SearchResponse",
	} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
}
