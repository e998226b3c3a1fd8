package extract

import (
	"regexp"
	"strings"
)

// 在未去除加粗标记的原文上匹配 "**Use Case N: 标题** ... **Keywords:** k1, k2"
var useCaseKeywordsRe = regexp.MustCompile(`(?s)\*\*(Use Case \d+: (.*?))\*\*.*?\*\*Keywords:\*\* (.*?)\n`)

// KeywordEntry 原文中一个用例的关键词
type KeywordEntry struct {
	Heading  string // "Use Case 1: Chatbot"
	Title    string // "Chatbot"
	Keywords []string
}

// UseCaseKeywords 直接从 LLM 原文中抽取 用例标题 -> 关键词。
// 解析后的用例缺少 Keywords 时作为补充来源。
func UseCaseKeywords(raw string) []KeywordEntry {
	// 最后一条关键词行可能没有换行
	matches := useCaseKeywordsRe.FindAllStringSubmatch(raw+"\n", -1)
	entries := make([]KeywordEntry, 0, len(matches))
	for _, m := range matches {
		var keywords []string
		for _, k := range strings.Split(m[3], ",") {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		entries = append(entries, KeywordEntry{
			Heading:  strings.TrimSpace(m[1]),
			Title:    strings.TrimSpace(m[2]),
			Keywords: keywords,
		})
	}
	return entries
}
