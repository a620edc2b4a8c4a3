package factory

import (
	"github.com/iWorld-y/info_agent/internal/config"
	"github.com/iWorld-y/info_agent/pkg/search"
	"github.com/iWorld-y/info_agent/pkg/search/duckduckgo"
	"github.com/iWorld-y/info_agent/pkg/search/gnews"
	"github.com/iWorld-y/info_agent/pkg/search/reddit"
	"github.com/iWorld-y/info_agent/pkg/search/rss"
	"github.com/iWorld-y/info_agent/pkg/search/wikipedia"
	"github.com/iWorld-y/info_agent/pkg/search/youtube"
)

// DefaultOrder 搜索源的默认优先级：百科在前，然后新闻、社区、网页、视频、RSS
var DefaultOrder = []string{"wikipedia", "gnews", "reddit", "duckduckgo", "youtube", "rss"}

// NewSearchers 根据配置创建可用的搜索源集合，返回 provider -> 客户端 映射和优先级顺序。
// 需要 API Key 的源在未配置时直接跳过。
func NewSearchers(cfg config.SearchConfig) (map[string]search.Searcher, []string) {
	searchers := make(map[string]search.Searcher)

	searchers["wikipedia"] = wikipedia.NewClient()
	searchers["duckduckgo"] = duckduckgo.NewClient()
	searchers["reddit"] = reddit.NewClient(cfg.Reddit.UserAgent)

	if cfg.GNews.APIKey != "" {
		searchers["gnews"] = gnews.NewClient(cfg.GNews.APIKey)
	}
	if cfg.YouTube.APIKey != "" {
		searchers["youtube"] = youtube.NewClient(cfg.YouTube.APIKey)
	}
	if len(cfg.RSS.Feeds) > 0 {
		searchers["rss"] = rss.NewClient(cfg.RSS.Feeds, cfg.RSS.Timeout)
	}

	order := cfg.Order
	if len(order) == 0 {
		order = DefaultOrder
	}

	// 只保留实际创建出来的源
	enabled := make([]string, 0, len(order))
	for _, name := range order {
		if _, ok := searchers[name]; ok {
			enabled = append(enabled, name)
		}
	}

	return searchers, enabled
}
