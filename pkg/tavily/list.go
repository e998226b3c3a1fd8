package tavily

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	quotedItemRe = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)"`)
	listMarkerRe = regexp.MustCompile(`^(?:[-•*]+|\d+[.)])\s*`)
)

// ParseList 把问答结果解析成名称列表。
// 依次尝试 JSON 数组、单引号风格的列表字面量、按换行/逗号拆分。
func ParseList(answer string) []string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return []string{}
	}

	if start, end := strings.Index(answer, "["), strings.LastIndex(answer, "]"); start >= 0 && end > start {
		literal := answer[start : end+1]

		var items []string
		if err := json.Unmarshal([]byte(literal), &items); err == nil {
			return clean(items)
		}

		var quoted []string
		for _, m := range quotedItemRe.FindAllStringSubmatch(literal, -1) {
			item := m[1]
			if item == "" {
				item = m[2]
			}
			quoted = append(quoted, strings.NewReplacer(`\'`, `'`, `\"`, `"`).Replace(item))
		}
		if len(quoted) > 0 {
			return clean(quoted)
		}
		answer = strings.Trim(literal, "[]")
	}

	fields := strings.FieldsFunc(answer, func(r rune) bool { return r == '\n' || r == ',' })
	for i, f := range fields {
		f = listMarkerRe.ReplaceAllString(strings.TrimSpace(f), "")
		fields[i] = strings.Trim(f, `'" `)
	}
	return clean(fields)
}

func clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
