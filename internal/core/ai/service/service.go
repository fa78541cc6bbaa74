package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitforge/internal/core/ai/cache"
	"fitforge/internal/core/ai/provider"
	"fitforge/internal/core/ai/queue"
	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"
	"fitforge/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Service AI 服務：快取、佇列與提供者的組合
type Service struct {
	config   *config.Config
	provider provider.Provider
	cache    cache.Cache
	queue    *queue.Manager
	metrics  *metrics.Manager
}

// NewService 創建 AI 服務，cache 與 metrics 可為 nil
func NewService(cfg *config.Config, p provider.Provider, c cache.Cache, q *queue.Manager, m *metrics.Manager) *Service {
	return &Service{
		config:   cfg,
		provider: p,
		cache:    c,
		queue:    q,
		metrics:  m,
	}
}

// Generate 處理中繼請求並回傳模型文字，不重試
func (s *Service) Generate(ctx context.Context, req common.RelayRequest) (string, error) {
	return s.generate(ctx, req, true)
}

// Complete 單一提示詞，每次都重新呼叫模型
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, common.RelayRequest{Prompt: prompt}, false)
}

func (s *Service) generate(ctx context.Context, req common.RelayRequest, useCache bool) (string, error) {
	msgs, err := req.Normalize()
	if err != nil {
		return "", err
	}

	system := strings.TrimSpace(req.SystemPrompt)
	if system == "" {
		system = s.config.AI.SystemPrompt
	}

	preq := &provider.Request{
		System:      system,
		Messages:    make([]provider.Message, 0, len(msgs)),
		MaxTokens:   s.config.AI.MaxTokens,
		Temperature: s.config.AI.Temperature,
	}
	for _, m := range msgs {
		preq.Messages = append(preq.Messages, provider.Message{Role: m.Role, Content: m.Content})
	}

	cached := useCache && s.cache != nil
	key := s.cacheKey(preq)
	if cached {
		val, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			s.countCache("hit")
			return val, nil
		case errors.Is(err, common.ErrCacheMiss):
			s.countCache("miss")
		default:
			s.countCache("error")
			common.LogWarn("Cache lookup failed", zap.Error(err))
		}
	}

	text, err := s.queue.Submit(ctx, func(ctx context.Context) (string, error) {
		return s.call(ctx, preq)
	})
	if err != nil {
		return "", err
	}

	if cached {
		if err := s.cache.Set(ctx, key, text); err != nil {
			common.LogWarn("Failed to store AI response in cache", zap.Error(err))
		}
	}

	return text, nil
}

func (s *Service) call(ctx context.Context, req *provider.Request) (string, error) {
	if timeout := s.provider.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, req)
	duration := time.Since(start)

	common.LogAICall(s.provider.Name(), duration, err)
	if s.metrics != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		s.metrics.CounterAICalls.WithLabelValues(s.provider.Name(), result).Inc()
		s.metrics.HistAICallDuration.WithLabelValues(s.provider.Name()).Observe(duration.Seconds())
	}

	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// cacheKey 由提供者、模型、system 與對話內容計算 SHA-256
func (s *Service) cacheKey(req *provider.Request) string {
	var b strings.Builder
	b.WriteString(s.provider.Name())
	b.WriteByte(0)
	b.WriteString(s.provider.GetModel())
	b.WriteByte(0)
	b.WriteString(req.System)
	for _, m := range req.Messages {
		b.WriteByte(0)
		b.WriteString(m.Role)
		b.WriteByte(0)
		b.WriteString(m.Content)
	}
	return common.HashString(b.String())
}

func (s *Service) countCache(result string) {
	if s.metrics != nil {
		s.metrics.CounterCache.WithLabelValues(result).Inc()
	}
}

// ProviderName 目前使用的提供者
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// Model 目前使用的模型
func (s *Service) Model() string {
	return s.provider.GetModel()
}

// QueueStatus 佇列狀態
func (s *Service) QueueStatus() *queue.Status {
	return s.queue.GetQueueStatus()
}

// CacheStats 快取統計，停用時為 nil
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

// Close 依序關閉佇列、快取與提供者
func (s *Service) Close() error {
	s.queue.Close()

	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	errs = append(errs, s.provider.Close())
	return errors.Join(errs...)
}
