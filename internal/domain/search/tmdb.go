package search

import (
	"context"
	"net/http"
	"net/url"

	"reviewroom/internal/domain/record"
)

const (
	DefaultTMDBURL   = "https://api.themoviedb.org/3/search/movie"
	tmdbPosterPrefix = "https://image.tmdb.org/t/p/w200"
)

// TMDB searches movies on The Movie Database.
type TMDB struct {
	client   *http.Client
	endpoint string
	apiKey   string
	language string
}

func NewTMDB(client *http.Client, endpoint, apiKey, language string) *TMDB {
	if endpoint == "" {
		endpoint = DefaultTMDBURL
	}
	return &TMDB{client: client, endpoint: endpoint, apiKey: apiKey, language: language}
}

func (p *TMDB) Name() string { return "tmdb" }

type tmdbResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Overview    string `json:"overview"`
		ReleaseDate string `json:"release_date"`
		PosterPath  string `json:"poster_path"`
	} `json:"results"`
}

func (p *TMDB) Search(ctx context.Context, query string) ([]record.Candidate, error) {
	params := url.Values{}
	params.Set("query", query)
	if p.language != "" {
		params.Set("language", p.language)
	}
	if p.apiKey != "" {
		params.Set("api_key", p.apiKey)
	}

	var body tmdbResponse
	if err := getJSON(ctx, p.client, p.Name(), p.endpoint, params, &body); err != nil {
		return nil, err
	}

	out := make([]record.Candidate, 0, len(body.Results))
	for _, m := range body.Results {
		if m.Title == "" {
			continue
		}
		c := record.Candidate{
			Title:   m.Title,
			Date:    m.ReleaseDate,
			Summary: m.Overview,
		}
		if m.PosterPath != "" {
			c.ImageURL = tmdbPosterPrefix + m.PosterPath
		}
		out = append(out, c)
	}
	return out, nil
}
