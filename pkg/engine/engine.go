// Package engine 实现对话编排：加载对话记录、判断是否联网搜索、
// 拼装提示词、调用模型并持久化结果。
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/info_agent/internal/logger"
	"github.com/iWorld-y/info_agent/pkg/aggregator"
	"github.com/iWorld-y/info_agent/pkg/classifier"
	"github.com/iWorld-y/info_agent/pkg/llm"
	"github.com/iWorld-y/info_agent/pkg/model"
	"github.com/iWorld-y/info_agent/pkg/search"
	"github.com/iWorld-y/info_agent/pkg/store"
	"github.com/iWorld-y/info_agent/pkg/summarizer"
)

// DefaultMaxTurns 每个用户保留的最大消息数（不含 system 指令）
const DefaultMaxTurns = 40

// disclaimers 需要从模型回复里删掉的免责声明片段
var disclaimers = []string{
	"As an AI language model, ",
	"as an AI language model, ",
	"As an AI, ",
	"as an AI, ",
	"I'm just an AI, ",
}

// SearchReply 搜索端点的聚合结果
type SearchReply struct {
	Reply   string
	Sources []search.Result
	Images  []string
	Summary string
}

// ChatReply 对话端点的结果
type ChatReply struct {
	Reply string
	News  []search.Result
}

// Engine 核心编排引擎
type Engine struct {
	agg      *aggregator.Aggregator
	summ     *summarizer.Summarizer
	gen      llm.Generator // 为 nil 时对话端点不可用
	store    store.Store
	persona  string
	maxTurns int
}

// NewEngine 创建引擎实例
func NewEngine(agg *aggregator.Aggregator, summ *summarizer.Summarizer, gen llm.Generator, st store.Store, persona string, maxTurns int) *Engine {
	if persona == "" {
		persona = model.DefaultPersona
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Engine{
		agg:      agg,
		summ:     summ,
		gen:      gen,
		store:    st,
		persona:  persona,
		maxTurns: maxTurns,
	}
}

// HandleSearch 聚合搜索并生成综述。上游失败已在聚合器和总结器里消化，
// 这里永远返回可用（可能降级）的结果。
func (e *Engine) HandleSearch(ctx context.Context, query string, sources []string) *SearchReply {
	rs := e.agg.Aggregate(ctx, query, sources)
	synopsis := e.summ.Summarize(ctx, query, rs.Results)
	return &SearchReply{
		Reply:   synopsis,
		Sources: rs.Results,
		Images:  rs.Images,
		Summary: synopsis,
	}
}

// HandleChat 处理一轮对话。模型调用失败是唯一向上传播的错误，
// 因为没有回复就没有可交付的内容。
func (e *Engine) HandleChat(ctx context.Context, userID, prompt, project string) (*ChatReply, error) {
	if e.gen == nil {
		return nil, fmt.Errorf("chat model is not configured")
	}

	conv := e.store.Load(ctx, userID)
	conv.Append(model.RoleUser, prompt)
	if project != "" {
		conv.LastProject = project
	}

	// 关键词命中时先做联网搜索，结果只进提示词不进持久化记录
	var news []search.Result
	var contextBlock string
	if classifier.WantsSearch(prompt) {
		rs := e.agg.Aggregate(ctx, prompt, nil)
		if len(rs.Results) > 0 {
			news = rs.Results
			synopsis := e.summ.Summarize(ctx, prompt, rs.Results)
			contextBlock = buildContextBlock(rs.Results, synopsis)
		}
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: e.persona},
		{Role: schema.User, Content: buildPrompt(conv, contextBlock, classifier.Classify(prompt))},
	}

	reply, err := e.gen.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat model call failed: %w", err)
	}

	reply = stripDisclaimers(reply)
	conv.Append(model.RoleAssistant, reply)
	conv.Trim(e.maxTurns)

	if err := e.store.Save(ctx, userID, conv); err != nil {
		// 持久化失败不阻塞响应
		logger.Log.Errorf("保存对话记录失败 [%s]: %v", userID, err)
	}

	return &ChatReply{Reply: reply, News: news}, nil
}

// buildPrompt 把全部历史消息按角色拼接，再附上搜索上下文和语气指令
func buildPrompt(conv *model.Conversation, contextBlock string, style classifier.Style) string {
	var sb strings.Builder
	for _, turn := range conv.Turns {
		fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.Content)
	}

	if contextBlock != "" {
		sb.WriteString("\n")
		sb.WriteString(contextBlock)
	}

	sb.WriteString("\n")
	sb.WriteString(toneInstruction(style))
	sb.WriteString("\nassistant:")
	return sb.String()
}

// buildContextBlock 把搜索结果格式化为提示词里的附加上下文
func buildContextBlock(results []search.Result, synopsis string) string {
	var sb strings.Builder
	sb.WriteString("Fresh search results:\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. [%s] %s", i+1, r.Source, r.Title)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, ": %s", r.Snippet)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Synopsis: %s\n", synopsis)
	return sb.String()
}

// toneInstruction 根据语言风格生成语气指令
func toneInstruction(style classifier.Style) string {
	switch style {
	case classifier.StyleSwahili:
		return "Tone: reply mostly in Swahili with casual sheng, keep it warm and friendly."
	case classifier.StyleMixed:
		return "Tone: reply in English with a light touch of Kenyan slang where it feels natural."
	default:
		return "Tone: reply in clear, friendly English."
	}
}

// stripDisclaimers 删除模型回复里的免责声明片段
func stripDisclaimers(reply string) string {
	for _, d := range disclaimers {
		reply = strings.ReplaceAll(reply, d, "")
	}
	return strings.TrimSpace(reply)
}
