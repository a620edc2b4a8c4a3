package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/info_agent/pkg/search"
)

const baseURL = "https://www.reddit.com/search.json"

// defaultUserAgent Reddit 要求带 UA，否则会被限流
const defaultUserAgent = "info_agent/1.0 (news aggregation bot)"

// Client Reddit 公共搜索客户端
type Client struct {
	userAgent string
	client    *http.Client
}

// NewClient 创建一个新的 Reddit 客户端
func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		userAgent: userAgent,
		client:    &http.Client{Timeout: 20 * time.Second},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// listingResponse Reddit listing 响应结构
type listingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Selftext  string `json:"selftext"`
				Permalink string `json:"permalink"`
				Thumbnail string `json:"thumbnail"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search 执行搜索
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
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
	q.Set("limit", fmt.Sprintf("%d", max))
	q.Set("sort", "relevance")
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit api error (status %d)", res.StatusCode)
	}

	var resp listingResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	var results []search.Result
	for _, child := range resp.Data.Children {
		d := child.Data
		// thumbnail 可能是 "self"/"default" 之类的占位符，只保留真实链接
		image := ""
		if strings.HasPrefix(d.Thumbnail, "http") {
			image = d.Thumbnail
		}
		results = append(results, search.Result{
			Title:   d.Title,
			Snippet: search.Truncate(d.Selftext, search.SnippetLimit),
			URL:     "https://www.reddit.com" + d.Permalink,
			Image:   image,
			Source:  "reddit",
		})
	}

	return &search.Response{Results: results}, nil
}
