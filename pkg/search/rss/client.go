package rss

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/info_agent/pkg/search"
)

// Client 基于固定 RSS 源列表的搜索客户端
type Client struct {
	feeds   []string
	timeout time.Duration
	parser  *gofeed.Parser
}

// NewClient 创建一个新的 RSS 客户端
func NewClient(feeds []string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 20 * time.Second
	}
	return &Client{
		feeds:   feeds,
		timeout: t,
		parser:  gofeed.NewParser(),
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Search 在配置的 RSS 源里查找与 query 相关的条目
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if len(c.feeds) == 0 {
		return &search.Response{}, nil
	}

	max := req.MaxResults
	if max <= 0 {
		max = 5
	}
	needle := strings.ToLower(req.Query)

	var results []search.Result
	var lastErr error

	for _, feedURL := range c.feeds {
		if len(results) >= max {
			break
		}

		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = fmt.Errorf("parse feed %s failed: %w", feedURL, err)
			continue
		}

		for _, item := range feed.Items {
			if len(results) >= max {
				break
			}
			if !matches(item, needle) {
				continue
			}

			snippet := item.Description
			if snippet == "" {
				// RSS 条目没有摘要时抓取原文正文
				if article, err := readability.FromURL(item.Link, c.timeout); err == nil {
					snippet = article.TextContent
				}
			}

			image := ""
			if item.Image != nil {
				image = item.Image.URL
			}

			results = append(results, search.Result{
				Title:   item.Title,
				Snippet: search.Truncate(strings.TrimSpace(snippet), search.SnippetLimit),
				URL:     item.Link,
				Image:   image,
				Source:  "rss",
			})
		}
	}

	if len(results) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return &search.Response{Results: results}, nil
}

// matches 标题或摘要包含 query 即视为相关
func matches(item *gofeed.Item, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle)
}
