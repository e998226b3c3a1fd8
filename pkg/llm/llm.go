// Package llm 封装文本生成模型调用
package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyResponse 模型没有返回任何文本
var ErrEmptyResponse = errors.New("llm returned empty response")

// Generator 根据提示词生成文本
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StripCodeFence 去掉模型输出外层的 ``` 代码块标记
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
