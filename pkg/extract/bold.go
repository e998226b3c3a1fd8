package extract

import "regexp"

var boldRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// StripBold 去掉 **text** 标记，保留其中文字。
// 一次替换可能拼出新的标记对（如 "****a**b**"），因此重复直到不再变化。
func StripBold(text string) string {
	for {
		next := boldRe.ReplaceAllString(text, "$1")
		if next == text {
			return next
		}
		text = next
	}
}
