package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/site_radar/internal/logger"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
)

// NewLimiter limit = rpm/60，burst = qps
func NewLimiter(rpm, qps int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)
}

// Retrying 在调用前等待限流器，遇到 429 或空输出时指数退避重试，
// 并去掉输出外层的代码块标记
type Retrying struct {
	next       Generator
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

var _ Generator = (*Retrying)(nil)

func NewRetrying(next Generator, limiter *rate.Limiter) *Retrying {
	return &Retrying{
		next:       next,
		limiter:    limiter,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		sleep:      sleepContext,
	}
}

func (r *Retrying) Generate(ctx context.Context, prompt string) (string, error) {
	for i := 0; ; i++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		out, err := r.next.Generate(ctx, prompt)
		if err == nil {
			if cleaned := StripCodeFence(out); cleaned != "" {
				return cleaned, nil
			}
			err = ErrEmptyResponse
		}
		if !retryable(err) || i >= r.maxRetries {
			return "", err
		}

		delay := r.baseDelay * time.Duration(1<<i)
		logger.Log.Warnf("LLM 调用失败，%v 后重试 (%d/%d): %v", delay, i+1, r.maxRetries, err)
		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
}

// retryable 限流与空输出可以重试
func retryable(err error) bool {
	return errors.Is(err, ErrEmptyResponse) || isRateLimited(err)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
