package gnews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/info_agent/pkg/search"
)

const baseURL = "https://gnews.io/api/v4/search"

// Client GNews API 客户端
type Client struct {
	apiKey string
	client *http.Client
}

// NewClient 创建一个新的 GNews 客户端
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// searchResponse GNews 搜索响应
type searchResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search 执行搜索
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gnews api key is missing")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	max := req.MaxResults
	if max <= 0 {
		max = 5
	}

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("token", c.apiKey)
	q.Set("lang", "en")
	q.Set("max", fmt.Sprintf("%d", max))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("gnews api error (status %d): %s", res.StatusCode, string(body))
	}

	var resp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	var results []search.Result
	for _, a := range resp.Articles {
		results = append(results, search.Result{
			Title:   a.Title,
			Snippet: search.Truncate(a.Description, search.SnippetLimit),
			URL:     a.URL,
			Image:   a.Image,
			Source:  "gnews",
		})
	}

	return &search.Response{Results: results}, nil
}
