package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	BaseURL      = "https://api.themoviedb.org/3"
	ImageBaseURL = "https://image.tmdb.org/t/p/"

	SizePosterW500    = "w500"
	SizeBackdropW1280 = "w1280"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	resp, err := c.httpClient.Get(fullURL)
	if err != nil {
		log.Printf("TMDb request failed: %v", err)
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("TMDb API error: status %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("tmdb api error: status %d", resp.StatusCode)
	}

	return body, nil
}

func (c *Client) SearchMovies(query string) (*MovieSearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	body, err := c.get("/search/movie", params)
	if err != nil {
		return nil, err
	}

	var result MovieSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &result, nil
}

func (c *Client) GetMovieDetails(tmdbID int) (*MovieDetails, error) {
	body, err := c.get(fmt.Sprintf("/movie/%d", tmdbID), nil)
	if err != nil {
		return nil, err
	}

	var details MovieDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &details, nil
}

func (c *Client) GetGenres() ([]Genre, error) {
	body, err := c.get("/genre/movie/list", nil)
	if err != nil {
		return nil, err
	}

	var result GenreListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return result.Genres, nil
}

func BuildImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s%s%s", ImageBaseURL, size, path)
}

func BuildPosterURL(path string) string {
	return BuildImageURL(SizePosterW500, path)
}

func BuildBackdropURL(path string) string {
	return BuildImageURL(SizeBackdropW1280, path)
}
