package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/iWorld-y/info_agent/pkg/search"
)

const baseURL = "https://en.wikipedia.org/w/api.php"

// Client Wikipedia 搜索客户端
type Client struct {
	client *http.Client
}

// NewClient 创建一个新的 Wikipedia 客户端
func NewClient() *Client {
	return &Client{
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// searchResponse MediaWiki list=search 响应结构
type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// 搜索摘要中携带的高亮标签
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Search 执行搜索
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", req.Query)
	q.Set("srlimit", fmt.Sprintf("%d", maxResults(req)))
	q.Set("format", "json")
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
		return nil, fmt.Errorf("wikipedia api error (status %d)", res.StatusCode)
	}

	var resp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	var results []search.Result
	for _, r := range resp.Query.Search {
		snippet := tagPattern.ReplaceAllString(r.Snippet, "")
		pageURL := "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(r.Title, " ", "_"))
		results = append(results, search.Result{
			Title:   r.Title,
			Snippet: search.Truncate(snippet, search.SnippetLimit),
			URL:     pageURL,
			Source:  "wikipedia",
		})
	}

	return &search.Response{Results: results}, nil
}

func maxResults(req *search.Request) int {
	if req.MaxResults > 0 {
		return req.MaxResults
	}
	return 5
}
