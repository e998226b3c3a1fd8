package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/iWorld-y/site_radar/internal/config"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain text", "plain text"},
		{"```json\n[\"a\"]\n```", `["a"]`},
		{"```\nUse Case 1: X\n```", "Use Case 1: X"},
		{"  ```markdown\n**Key offerings**\n- A\n```  ", "**Key offerings**\n- A"},
		{"```", ""},
		{"text with ``` inside", "text with ``` inside"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripCodeFence(tt.in), tt.in)
	}
}

type scriptedGenerator struct {
	outputs []string
	errs    []error
	calls   int
}

func (s *scriptedGenerator) Generate(context.Context, string) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(s.outputs) {
		return s.outputs[i], nil
	}
	return "", nil
}

func newTestRetrying(next Generator) (*Retrying, *[]time.Duration) {
	var delays []time.Duration
	r := NewRetrying(next, rate.NewLimiter(rate.Inf, 1))
	r.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return r, &delays
}

func TestRetrying_BacksOffOnRateLimit(t *testing.T) {
	gen := &scriptedGenerator{
		errs:    []error{errors.New("status 429"), errors.New("Too Many Requests"), nil},
		outputs: []string{"", "", "```\nanswer\n```"},
	}
	r, delays := newTestRetrying(gen)

	out, err := r.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "answer", out)
	assert.Equal(t, 3, gen.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *delays)
}

func TestRetrying_OtherErrorsAreNotRetried(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{errors.New("invalid api key")}}
	r, _ := newTestRetrying(gen)

	_, err := r.Generate(context.Background(), "p")
	assert.EqualError(t, err, "invalid api key")
	assert.Equal(t, 1, gen.calls)
}

func TestRetrying_GivesUpAfterMaxRetries(t *testing.T) {
	limited := errors.New("429 quota")
	gen := &scriptedGenerator{errs: []error{limited, limited, limited, limited, limited}}
	r, delays := newTestRetrying(gen)

	_, err := r.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, limited)
	assert.Equal(t, 4, gen.calls)
	assert.Len(t, *delays, 3)
}

func TestRetrying_EmptyOutput(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{"", "  ", "```\n```", ""}}
	r, delays := newTestRetrying(gen)

	_, err := r.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, 4, gen.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, *delays)
}

func TestRetrying_EmptyResponseErrorBacksOff(t *testing.T) {
	gen := &scriptedGenerator{
		errs:    []error{ErrEmptyResponse, nil},
		outputs: []string{"", "Use Case 1: X"},
	}
	r, delays := newTestRetrying(gen)

	out, err := r.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Use Case 1: X", out)
	assert.Equal(t, []time.Duration{2 * time.Second}, *delays)
}

func TestRetrying_ContextCanceled(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{errors.New("429")}}
	r := NewRetrying(gen, rate.NewLimiter(rate.Inf, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Generate(ctx, "p")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(120, 3)
	assert.Equal(t, rate.Limit(2), l.Limit())
	assert.Equal(t, 3, l.Burst())
}

type fakeChatModel struct {
	got  []*schema.Message
	resp *schema.Message
	err  error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.got = input
	return f.resp, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func (f *fakeChatModel) BindTools([]*schema.ToolInfo) error { return nil }

func TestChatModelGenerator(t *testing.T) {
	cm := &fakeChatModel{resp: schema.AssistantMessage("Key offerings\n- A", nil)}
	out, err := NewChatModelGenerator(cm).Generate(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, "Key offerings\n- A", out)
	require.Len(t, cm.got, 1)
	assert.Equal(t, schema.User, cm.got[0].Role)
	assert.Equal(t, "analyze", cm.got[0].Content)

	_, err = NewChatModelGenerator(&fakeChatModel{}).Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: "thinking", Thought: true}, {Text: "Use Case 1: "}, {Text: "X"}}},
	}}}
	out, err := candidateText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Use Case 1: X", out)

	_, err = candidateText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	_, err = candidateText(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNew(t *testing.T) {
	cfg := &config.Config{
		LLM:         config.LLMConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: "http://localhost:1/v1"},
		Concurrency: config.ConcurrencyConfig{QPS: 1, RPM: 60},
	}
	g, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &Retrying{}, g)

	cfg.LLM = config.LLMConfig{Provider: "gemini", APIKey: "g-test"}
	g, err = New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &Retrying{}, g)

	cfg.LLM.Provider = "llama"
	_, err = New(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrUnknownProvider)
}
