package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/proyo/internal/config"
	"github.com/abhisek/proyo/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockJSON(map[string]int{"b": 2}),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp1.Content))
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, "end", resp1.StopReason)

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(resp2.Content))
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockText("hola"))

	resp, err := mock.Generate(context.Background(), UserPrompt("sys", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "hola", resp.Text())

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "sys", calls[0].System)
	assert.Equal(t, RoleUser, calls[0].Messages[0].Role)
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]any{"description": "Leer"}))

	req := UserPrompt("", "x")
	req.Schema = testSchema()
	_, err := mock.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}

func TestMockProvider_ReleaseHoldsResponse(t *testing.T) {
	release := make(chan struct{})
	resp := MockJSON(map[string]string{"sentiment": "neutral"})
	resp.Release = release
	mock := NewMockProvider(resp)

	done := make(chan error, 1)
	go func() {
		_, err := mock.Generate(context.Background(), Request{})
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("response delivered before release")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	require.NoError(t, <-done)
}

func TestMockProvider_ReleaseHonorsContext(t *testing.T) {
	resp := MockText("late")
	resp.Release = make(chan struct{})
	mock := NewMockProvider(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := mock.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: 0}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
}

func TestMockProvider_ModelID(t *testing.T) {
	assert.Equal(t, "mock", NewMockProvider().ModelID())
}

func TestResponse_Decode(t *testing.T) {
	var out struct {
		Sentiment string `json:"sentiment"`
	}
	resp := &Response{Content: json.RawMessage(`{"sentiment":"positive"}`)}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "positive", out.Sentiment)

	bad := &Response{Content: json.RawMessage(`[1,2`)}
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, bad.Decode(&out), &inv)
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))

	ctx = WithPurpose(ctx, PurposeSentiment)
	assert.Equal(t, PurposeSentiment, PurposeFrom(ctx))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, APIKey: "sk-test"}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, APIKey: "sk-test"}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"gemini with key", Config{Provider: ProviderGemini, APIKey: "g-test"}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearKeyEnv(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.APIKey)
	assert.Equal(t, "claude-haiku", cfg.Model)

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderGemini, cfg.Provider)
}

func TestFromConfig(t *testing.T) {
	clearKeyEnv(t)

	t.Run("nothing configured", func(t *testing.T) {
		_, ok := FromConfig(config.LLMConfig{})
		assert.False(t, ok)
	})

	t.Run("explicit provider falls back to env key", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "sk-or")
		cfg, ok := FromConfig(config.LLMConfig{Provider: ProviderOpenRouter, MaxRetries: 5})
		require.True(t, ok)
		assert.Equal(t, "sk-or", cfg.APIKey)
		assert.Equal(t, defaultOpenRouterBaseURL, cfg.BaseURL)
		assert.Equal(t, defaultModels[ProviderOpenRouter], cfg.Model)
		assert.Equal(t, 5, cfg.Retry.MaxAttempts)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("explicit values win", func(t *testing.T) {
		cfg, ok := FromConfig(config.LLMConfig{
			Provider: ProviderOpenAI,
			APIKey:   "sk-x",
			Model:    "gpt-4.1-mini",
			BaseURL:  "http://localhost:8080/v1",
			Timeout:  5 * time.Second,
		})
		require.True(t, ok)
		assert.Equal(t, "sk-x", cfg.APIKey)
		assert.Equal(t, "gpt-4.1-mini", cfg.Model)
		assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
		assert.Equal(t, DefaultRetry().MaxAttempts, cfg.Retry.MaxAttempts)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestNewProvider_RejectsInvalidConfig(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil, zap.NewNop())
	assert.Error(t, err)
}

type fakeEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return f.err
}

func (f *fakeEvents) QueryLLMRequests(context.Context, store.QueryOpts) ([]store.LLMRequestRecord, error) {
	return nil, nil
}

func (f *fakeEvents) LLMUsageByModel(context.Context) ([]store.LLMUsage, error) {
	return nil, nil
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	events := &fakeEvents{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, ProviderMock, events, zap.NewNop())
	ctx := WithPurpose(context.Background(), PurposePlan)

	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	require.Len(t, events.events, 2)
	ok, failed := events.events[0], events.events[1]
	assert.True(t, ok.Success)
	assert.Equal(t, PurposePlan, ok.Purpose)
	assert.Equal(t, "mock", ok.Model)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Equal(t, 4, ok.OutputTokens)
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "down")
}

func TestLoggingProvider_EventFailureDoesNotFailRequest(t *testing.T) {
	events := &fakeEvents{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockText("ok")), ProviderMock, events, nil)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
}

func TestLoggingProvider_NilEvents(t *testing.T) {
	p := WithLogging(NewMockProvider(MockText("ok")), ProviderMock, nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
}

func TestWithTimeout(t *testing.T) {
	resp := MockText("slow")
	resp.Release = make(chan struct{})
	p := WithTimeout(NewMockProvider(resp), 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "mock", p.ModelID())

	mock := NewMockProvider()
	assert.Same(t, mock, WithTimeout(mock, 0))
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.75, c.Cost(1_000_000, 1_000_000), 1e-9)

	require.NotNil(t, LookupCost("gemini-flash"))
	require.NotNil(t, LookupCost("claude-haiku"))
	assert.Nil(t, LookupCost("mock"))
}
