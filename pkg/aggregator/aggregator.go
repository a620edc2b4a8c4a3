package aggregator

import (
	"context"
	"sync"

	"github.com/iWorld-y/info_agent/internal/logger"
	"github.com/iWorld-y/info_agent/pkg/search"
)

// 聚合结果的默认上限
const (
	DefaultMaxResults = 10
	DefaultMaxImages  = 6
)

// ResultSet 聚合后的搜索结果
type ResultSet struct {
	Results []search.Result
	Images  []string
}

// Aggregator 并发调用全部搜索源并按固定优先级合并
type Aggregator struct {
	searchers  map[string]search.Searcher
	order      []string
	maxResults int
	maxImages  int
}

// New 创建聚合器。order 决定合并时的优先级，不在 searchers 里的名字会被忽略。
func New(searchers map[string]search.Searcher, order []string, maxResults, maxImages int) *Aggregator {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	return &Aggregator{
		searchers:  searchers,
		order:      order,
		maxResults: maxResults,
		maxImages:  maxImages,
	}
}

// Aggregate 用同一个 query 并发查询 enabled 指定的源（为空则查询全部），
// 等待所有源返回后按优先级拼接并截断。单个源失败只会得到空结果，
// 全部失败时返回空集合而不是错误。
func (a *Aggregator) Aggregate(ctx context.Context, query string, enabled []string) *ResultSet {
	names := a.enabledNames(enabled)

	perSource := make(map[string][]search.Result, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range names {
		searcher := a.searchers[name]
		wg.Add(1)
		go func(name string, searcher search.Searcher) {
			defer wg.Done()

			resp, err := searcher.Search(ctx, &search.Request{Query: query, MaxResults: a.maxResults})
			if err != nil {
				logger.Log.Warnf("搜索源 [%s] 查询失败: %v", name, err)
				return
			}

			mu.Lock()
			perSource[name] = resp.Results
			mu.Unlock()
		}(name, searcher)
	}

	wg.Wait()

	// 按优先级拼接，不做相关性重排
	merged := make([]search.Result, 0, a.maxResults)
	for _, name := range names {
		merged = append(merged, perSource[name]...)
	}
	if len(merged) > a.maxResults {
		merged = merged[:a.maxResults]
	}

	// 图片列表只从截断后的结果里取
	images := make([]string, 0, a.maxImages)
	for _, r := range merged {
		if len(images) >= a.maxImages {
			break
		}
		if r.Image != "" {
			images = append(images, r.Image)
		}
	}

	return &ResultSet{Results: merged, Images: images}
}

// enabledNames 求 enabled 与已注册源的交集，保持优先级顺序
func (a *Aggregator) enabledNames(enabled []string) []string {
	if len(enabled) == 0 {
		return a.order
	}
	want := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		want[name] = true
	}
	names := make([]string, 0, len(enabled))
	for _, name := range a.order {
		if want[name] {
			names = append(names, name)
		}
	}
	return names
}
