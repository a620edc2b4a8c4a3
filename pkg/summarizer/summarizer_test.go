package summarizer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/info_agent/pkg/search"
)

// fakeGenerator 返回固定回复或固定错误
type fakeGenerator struct {
	reply    string
	err      error
	lastSent string
}

func (f *fakeGenerator) Generate(ctx context.Context, messages []*schema.Message) (string, error) {
	if len(messages) > 0 {
		f.lastSent = messages[len(messages)-1].Content
	}
	return f.reply, f.err
}

var sampleResults = []search.Result{
	{Title: "Election results announced", Snippet: "The commission announced...", Source: "gnews"},
	{Title: "Reactions on social media", Snippet: "Users discussed...", Source: "reddit"},
}

func TestSummarize_NoGeneratorFallsBack(t *testing.T) {
	s := New(nil)
	got := s.Summarize(context.Background(), "elections", sampleResults)
	if got != FallbackReply {
		t.Errorf("Summarize() = %q, want fallback", got)
	}
}

func TestSummarize_GeneratorErrorFallsBack(t *testing.T) {
	s := New(&fakeGenerator{err: fmt.Errorf("model down")})
	got := s.Summarize(context.Background(), "elections", sampleResults)
	if got != FallbackReply {
		t.Errorf("Summarize() = %q, want fallback", got)
	}
}

func TestSummarize_EmptyResultsFallsBack(t *testing.T) {
	s := New(&fakeGenerator{reply: "should not be used"})
	got := s.Summarize(context.Background(), "elections", nil)
	if got != FallbackReply {
		t.Errorf("Summarize() = %q, want fallback", got)
	}
}

func TestSummarize_Success(t *testing.T) {
	gen := &fakeGenerator{reply: "A short synopsis."}
	s := New(gen)

	got := s.Summarize(context.Background(), "elections", sampleResults)
	if got != "A short synopsis." {
		t.Errorf("Summarize() = %q", got)
	}

	// 提示词里要带查询和每条结果的序号、标题、摘要
	for _, want := range []string{"elections", "1. Election results announced", "2. Reactions on social media", "The commission announced..."} {
		if !strings.Contains(gen.lastSent, want) {
			t.Errorf("提示词缺少 %q:\n%s", want, gen.lastSent)
		}
	}
}
