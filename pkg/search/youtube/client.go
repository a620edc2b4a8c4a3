package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/info_agent/pkg/search"
)

const baseURL = "https://www.googleapis.com/youtube/v3/search"

// Client YouTube Data API 客户端
type Client struct {
	apiKey string
	client *http.Client
}

// NewClient 创建一个新的 YouTube 客户端
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// searchResponse YouTube 搜索响应
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Thumbnails  struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search 执行搜索
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("youtube api key is missing")
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
	q.Set("part", "snippet")
	q.Set("q", req.Query)
	q.Set("key", c.apiKey)
	q.Set("type", "video")
	q.Set("maxResults", fmt.Sprintf("%d", max))
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
		return nil, fmt.Errorf("youtube api error (status %d)", res.StatusCode)
	}

	var resp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	var results []search.Result
	for _, item := range resp.Items {
		image := item.Snippet.Thumbnails.Medium.URL
		if image == "" {
			image = item.Snippet.Thumbnails.Default.URL
		}
		results = append(results, search.Result{
			Title:   item.Snippet.Title,
			Snippet: search.Truncate(item.Snippet.Description, search.SnippetLimit),
			URL:     "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Image:   image,
			Source:  "youtube",
		})
	}

	return &search.Response{Results: results}, nil
}
