package search

import "context"

// SnippetLimit 摘要最大长度，各适配器在返回前自行截断
const SnippetLimit = 200

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	MaxResults int
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条归一化的搜索结果
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url,omitempty"`
	Image   string `json:"image,omitempty"`
	Source  string `json:"source"`
}

// Truncate 截断摘要到 n 个字符
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
