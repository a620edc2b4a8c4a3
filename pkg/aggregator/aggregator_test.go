package aggregator

import (
	"context"
	"fmt"
	"testing"

	"github.com/iWorld-y/info_agent/pkg/search"
)

// fakeSearcher 按配置返回固定结果或固定错误
type fakeSearcher struct {
	results []search.Result
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &search.Response{Results: f.results}, nil
}

func makeResults(source string, n int, withImage bool) []search.Result {
	out := make([]search.Result, 0, n)
	for i := 0; i < n; i++ {
		r := search.Result{
			Title:   fmt.Sprintf("%s-%d", source, i),
			Snippet: "snippet",
			URL:     fmt.Sprintf("https://example.com/%s/%d", source, i),
			Source:  source,
		}
		if withImage {
			r.Image = fmt.Sprintf("https://example.com/%s/%d.jpg", source, i)
		}
		out = append(out, r)
	}
	return out
}

func TestAggregate_TruncatesToMaxResults(t *testing.T) {
	searchers := map[string]search.Searcher{
		"a": &fakeSearcher{results: makeResults("a", 8, false)},
		"b": &fakeSearcher{results: makeResults("b", 8, false)},
	}
	agg := New(searchers, []string{"a", "b"}, 10, 6)

	rs := agg.Aggregate(context.Background(), "anything", nil)
	if len(rs.Results) != 10 {
		t.Errorf("Aggregate() len = %d, want 10", len(rs.Results))
	}
}

func TestAggregate_PriorityOrder(t *testing.T) {
	searchers := map[string]search.Searcher{
		"low":  &fakeSearcher{results: makeResults("low", 2, false)},
		"high": &fakeSearcher{results: makeResults("high", 2, false)},
	}
	agg := New(searchers, []string{"high", "low"}, 10, 6)

	rs := agg.Aggregate(context.Background(), "anything", nil)
	if len(rs.Results) != 4 {
		t.Fatalf("Aggregate() len = %d, want 4", len(rs.Results))
	}
	// 优先级在前的源整体排在前面，源内顺序保持不变
	wantOrder := []string{"high-0", "high-1", "low-0", "low-1"}
	for i, want := range wantOrder {
		if rs.Results[i].Title != want {
			t.Errorf("Results[%d].Title = %s, want %s", i, rs.Results[i].Title, want)
		}
	}
}

func TestAggregate_ImagesFromKeptResultsOnly(t *testing.T) {
	searchers := map[string]search.Searcher{
		"a": &fakeSearcher{results: makeResults("a", 3, false)},
		"b": &fakeSearcher{results: makeResults("b", 10, true)},
	}
	agg := New(searchers, []string{"a", "b"}, 5, 6)

	rs := agg.Aggregate(context.Background(), "anything", nil)
	if len(rs.Results) != 5 {
		t.Fatalf("Aggregate() len = %d, want 5", len(rs.Results))
	}
	// 截断后只剩 b 的前两条带图结果，被丢弃的尾部不应贡献图片
	if len(rs.Images) != 2 {
		t.Errorf("Images len = %d, want 2", len(rs.Images))
	}
	for _, img := range rs.Images {
		found := false
		for _, r := range rs.Results {
			if r.Image == img {
				found = true
			}
		}
		if !found {
			t.Errorf("Images 包含不在截断结果里的图片: %s", img)
		}
	}
}

func TestAggregate_ImagesBound(t *testing.T) {
	searchers := map[string]search.Searcher{
		"a": &fakeSearcher{results: makeResults("a", 10, true)},
	}
	agg := New(searchers, []string{"a"}, 10, 6)

	rs := agg.Aggregate(context.Background(), "anything", nil)
	if len(rs.Images) != 6 {
		t.Errorf("Images len = %d, want 6", len(rs.Images))
	}
}

func TestAggregate_AllSourcesFail(t *testing.T) {
	searchers := map[string]search.Searcher{
		"a": &fakeSearcher{err: fmt.Errorf("network down")},
		"b": &fakeSearcher{err: fmt.Errorf("bad payload")},
	}
	agg := New(searchers, []string{"a", "b"}, 10, 6)

	rs := agg.Aggregate(context.Background(), "anything", nil)
	if len(rs.Results) != 0 {
		t.Errorf("Aggregate() len = %d, want 0", len(rs.Results))
	}
	if len(rs.Images) != 0 {
		t.Errorf("Images len = %d, want 0", len(rs.Images))
	}
}

func TestAggregate_PartialFailure(t *testing.T) {
	searchers := map[string]search.Searcher{
		"dead":  &fakeSearcher{err: fmt.Errorf("boom")},
		"alive": &fakeSearcher{results: makeResults("alive", 2, false)},
	}
	agg := New(searchers, []string{"dead", "alive"}, 10, 6)

	rs := agg.Aggregate(context.Background(), "anything", nil)
	if len(rs.Results) != 2 {
		t.Errorf("Aggregate() len = %d, want 2", len(rs.Results))
	}
}

func TestAggregate_EnabledSubset(t *testing.T) {
	searchers := map[string]search.Searcher{
		"a": &fakeSearcher{results: makeResults("a", 2, false)},
		"b": &fakeSearcher{results: makeResults("b", 2, false)},
	}
	agg := New(searchers, []string{"a", "b"}, 10, 6)

	rs := agg.Aggregate(context.Background(), "anything", []string{"b"})
	if len(rs.Results) != 2 {
		t.Fatalf("Aggregate() len = %d, want 2", len(rs.Results))
	}
	for _, r := range rs.Results {
		if r.Source != "b" {
			t.Errorf("Result source = %s, want b", r.Source)
		}
	}
}
