// Package classifier 提供两个纯函数式的文本启发式判断：
// 是否需要联网搜索，以及用户消息的语言风格。
package classifier

import "strings"

// searchTriggers 触发联网搜索的关键词表，命中任意一个即触发
var searchTriggers = []string{
	"search",
	"find",
	"trending",
	"latest updates",
	"on reddit",
	"current events",
	"news",
	"what's happening",
	"habari za",
}

// WantsSearch 判断用户消息是否需要先做联网搜索（大小写不敏感的子串匹配）
func WantsSearch(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range searchTriggers {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Style 语言风格分类结果
type Style int

const (
	StyleEnglish Style = iota
	StyleMixed
	StyleSwahili
)

func (s Style) String() string {
	switch s {
	case StyleSwahili:
		return "swahili"
	case StyleMixed:
		return "mixed"
	default:
		return "english"
	}
}

// swahiliMarkers 斯瓦希里语常用词标记
var swahiliMarkers = []string{
	"sasa",
	"mambo",
	"niaje",
	"habari",
	"poa",
	"sawa",
	"asante",
	"karibu",
	"rafiki",
	"pole",
}

// slangMarkers 本地口语/俚语标记
var slangMarkers = []string{
	"bro",
	"maze",
	"manze",
	"fiti",
	"noma",
	"vipi",
	"msee",
	"buda",
	"mzee",
	"uko aje",
}

// Classify 统计两张关键词表在输入里的出现次数（大小写不敏感、子串匹配）。
// 0 次为 english，1-2 次为 mixed，3 次及以上为 swahili。
// 这是一个粗糙的启发式，不是语言检测模型；阈值和匹配方式刻意保持简单。
func Classify(text string) Style {
	lower := strings.ToLower(text)

	total := 0
	for _, kw := range swahiliMarkers {
		total += strings.Count(lower, kw)
	}
	for _, kw := range slangMarkers {
		total += strings.Count(lower, kw)
	}

	switch {
	case total == 0:
		return StyleEnglish
	case total <= 2:
		return StyleMixed
	default:
		return StyleSwahili
	}
}
