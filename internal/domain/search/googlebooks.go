package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"reviewroom/internal/domain/record"
)

const DefaultGoogleBooksURL = "https://www.googleapis.com/books/v1/volumes"

// GoogleBooks searches the Google Books volumes API.
type GoogleBooks struct {
	client   *http.Client
	endpoint string
	apiKey   string
	language string
}

func NewGoogleBooks(client *http.Client, endpoint, apiKey, language string) *GoogleBooks {
	if endpoint == "" {
		endpoint = DefaultGoogleBooksURL
	}
	return &GoogleBooks{client: client, endpoint: endpoint, apiKey: apiKey, language: language}
}

func (p *GoogleBooks) Name() string { return "googlebooks" }

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			PublishedDate string   `json:"publishedDate"`
			Description   string   `json:"description"`
			Categories    []string `json:"categories"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (p *GoogleBooks) Search(ctx context.Context, query string) ([]record.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	if lang := langRestrict(p.language); lang != "" {
		params.Set("langRestrict", lang)
	}
	if p.apiKey != "" {
		params.Set("key", p.apiKey)
	}

	var body volumesResponse
	if err := getJSON(ctx, p.client, p.Name(), p.endpoint, params, &body); err != nil {
		return nil, err
	}

	out := make([]record.Candidate, 0, len(body.Items))
	for _, item := range body.Items {
		v := item.VolumeInfo
		if v.Title == "" {
			continue
		}
		out = append(out, record.Candidate{
			Title:       v.Title,
			CreatorName: strings.Join(v.Authors, ", "),
			Date:        v.PublishedDate,
			Genre:       strings.Join(v.Categories, ", "),
			ImageURL:    v.ImageLinks.Thumbnail,
			Summary:     v.Description,
		})
	}
	return out, nil
}

// langRestrict takes the primary subtag of a locale like "en-US".
func langRestrict(locale string) string {
	lang, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(lang)
}
