package service

import (
	"context"
	"fmt"
	"skillbloom_backend/internal/config"
	"skillbloom_backend/internal/util"
	"skillbloom_backend/pkg/logger"
	"skillbloom_backend/pkg/monitoring"
	"skillbloom_backend/pkg/tracing"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TextCompleter 外部大模型文本补全能力
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAICompleter 调用 OpenAI 兼容接口（base_url 可指向任意兼容网关）
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

func NewOpenAICompleter(cfg config.AIConfig) *OpenAICompleter {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ai.completion",
		trace.WithAttributes(attribute.String("ai.model", c.model)),
	)
	defer span.End()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", fmt.Errorf("chat completion (model %s): %w", c.model, err)
	}
	if len(resp.Choices) == 0 {
		span.SetStatus(codes.Error, "no choices")
		return "", fmt.Errorf("%w: no choices returned", util.ErrCompletionUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// unavailableCompleter 未配置 API Key 时使用，总是返回不可用
type unavailableCompleter struct{}

func (unavailableCompleter) Complete(context.Context, string) (string, error) {
	return "", util.ErrCompletionUnavailable
}

// NewTextCompleter 根据配置选择实现
func NewTextCompleter(cfg config.AIConfig) TextCompleter {
	if !cfg.Enabled() {
		return unavailableCompleter{}
	}
	return NewOpenAICompleter(cfg)
}

// AIService 持有当前的 TextCompleter，配置热更新时整体替换
type AIService struct {
	mu        sync.RWMutex
	completer TextCompleter
	timeout   time.Duration
}

func NewAIService(completer TextCompleter, timeout time.Duration) *AIService {
	return &AIService{completer: completer, timeout: timeout}
}

func (s *AIService) SetCompleter(completer TextCompleter, timeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completer = completer
	s.timeout = timeout
}

// Reload 供 configwatcher 回调使用
func (s *AIService) Reload(cfg *config.Config) {
	s.SetCompleter(NewTextCompleter(cfg.AI), cfg.AI.Timeout())
	logger.Log.Info("AI completer reloaded",
		zap.Bool("enabled", cfg.AI.Enabled()),
		zap.String("model", cfg.AI.Model),
	)
}

// Complete 只调用一次，不重试。失败、超时或空结果都返回 ok=false，由调用方走兜底
func (s *AIService) Complete(ctx context.Context, operation, prompt string) (string, bool) {
	s.mu.RLock()
	completer, timeout := s.completer, s.timeout
	s.mu.RUnlock()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := completer.Complete(ctx, prompt)
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = fmt.Errorf("%w: empty response", util.ErrCompletionUnavailable)
	}
	if err != nil {
		s.recordFallback(operation, err)
		return "", false
	}
	return text, true
}

func (s *AIService) recordFallback(operation string, err error) {
	monitoring.AICompletionFallbacks.WithLabelValues(operation).Inc()
	logger.Log.Warn("AI completion unavailable, using fallback",
		zap.String("operation", operation),
		zap.Error(err),
	)
}
