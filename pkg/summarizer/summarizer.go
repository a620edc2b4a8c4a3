package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/info_agent/internal/logger"
	"github.com/iWorld-y/info_agent/pkg/llm"
	"github.com/iWorld-y/info_agent/pkg/search"
)

// FallbackReply 模型不可用或调用失败时的兜底回复
const FallbackReply = "Here's what I found online."

// Summarizer 把聚合后的搜索结果压缩成一段简短综述
type Summarizer struct {
	gen llm.Generator // 为 nil 时表示模型未配置，直接走兜底
}

// New 创建 Summarizer，gen 可以为 nil
func New(gen llm.Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// Summarize 生成搜索结果综述。摘要永远是尽力而为：
// 任何失败都返回兜底字符串，不会向上传播错误。
func (s *Summarizer) Summarize(ctx context.Context, query string, results []search.Result) string {
	if s.gen == nil || len(results) == 0 {
		return FallbackReply
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a concise news editor. Summarize the search results in 2-3 sentences of plain text."},
		{Role: schema.User, Content: BuildPrompt(query, results)},
	}

	reply, err := s.gen.Generate(ctx, messages)
	if err != nil {
		logger.Log.Warnf("搜索结果总结失败: %v", err)
		return FallbackReply
	}
	if reply == "" {
		return FallbackReply
	}
	return reply
}

// BuildPrompt 拼装总结提示词：查询 + 每条结果的序号、标题和摘要
func BuildPrompt(query string, results []search.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n\nSearch results:\n", query)
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n%s\n\n", i+1, r.Title, r.Snippet)
	}
	sb.WriteString("Write a short synopsis of these results for the user.")
	return sb.String()
}
