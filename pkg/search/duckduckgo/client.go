package duckduckgo

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

const baseURL = "https://api.duckduckgo.com/"

// Client DuckDuckGo Instant Answer API 客户端
type Client struct {
	client *http.Client
}

// NewClient 创建一个新的 DuckDuckGo 客户端
func NewClient() *Client {
	return &Client{
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// instantAnswer Instant Answer API 响应结构
type instantAnswer struct {
	AbstractText   string `json:"AbstractText"`
	AbstractSource string `json:"AbstractSource"`
	AbstractURL    string `json:"AbstractURL"`
	Image          string `json:"Image"`
	RelatedTopics  []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
		Icon     struct {
			URL string `json:"URL"`
		} `json:"Icon"`
	} `json:"RelatedTopics"`
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
	q.Set("format", "json")
	q.Set("no_html", "1")
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo api error (status %d)", res.StatusCode)
	}

	var resp instantAnswer
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	var results []search.Result

	// Abstract 优先
	if resp.AbstractText != "" {
		results = append(results, search.Result{
			Title:   resp.AbstractSource,
			Snippet: search.Truncate(resp.AbstractText, search.SnippetLimit),
			URL:     resp.AbstractURL,
			Image:   absoluteURL(resp.Image),
			Source:  "duckduckgo",
		})
	}

	for _, topic := range resp.RelatedTopics {
		if len(results) >= max {
			break
		}
		if topic.Text == "" || topic.FirstURL == "" {
			continue
		}
		title := topic.Text
		if len(title) > 100 {
			title = title[:100]
		}
		results = append(results, search.Result{
			Title:   title,
			Snippet: search.Truncate(topic.Text, search.SnippetLimit),
			URL:     topic.FirstURL,
			Image:   absoluteURL(topic.Icon.URL),
			Source:  "duckduckgo",
		})
	}

	return &search.Response{Results: results}, nil
}

// absoluteURL Instant Answer 的图标路径可能是相对路径
func absoluteURL(s string) string {
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "/") {
		return "https://duckduckgo.com" + s
	}
	return s
}
