// Package aitest 提供測試用的假提供者與 AI 服務
package aitest

import (
	"context"
	"sync"
	"time"

	"fitforge/internal/core/ai/cache"
	"fitforge/internal/core/ai/provider"
	"fitforge/internal/core/ai/queue"
	"fitforge/internal/core/ai/service"
	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/metrics"
)

// FakeProvider 記錄收到的請求並回傳預設內容
type FakeProvider struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	Delay    time.Duration
	Timeout  time.Duration
	Requests []*provider.Request
}

// Generate 回傳 Reply 或 Err
func (f *FakeProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	f.mu.Lock()
	f.Requests = append(f.Requests, req)
	reply, err, delay := f.Reply, f.Err, f.Delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &provider.Response{Content: reply}, nil
}

// Calls 已呼叫次數
func (f *FakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// LastRequest 最後一次請求
func (f *FakeProvider) LastRequest() *provider.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return nil
	}
	return f.Requests[len(f.Requests)-1]
}

func (f *FakeProvider) Name() string              { return "fake" }
func (f *FakeProvider) GetModel() string          { return "fake-model" }
func (f *FakeProvider) GetTimeout() time.Duration { return f.Timeout }
func (f *FakeProvider) Close() error              { return nil }

// Config 測試用設定
func Config() *config.Config {
	return &config.Config{
		AI: config.AIConfig{
			Provider:    "fake",
			Timeout:     5 * time.Second,
			MaxTokens:   512,
			Temperature: 0.7,
		},
		Cache: config.CacheConfig{Enabled: true, Backend: config.CacheMemory, MaxSize: 100, TTL: time.Hour},
		Queue: config.QueueConfig{Workers: 2, MaxSize: 10},
	}
}

// NewService 以假提供者建立完整的 AI 服務；withCache 決定是否使用記憶體快取
func NewService(p provider.Provider, withCache bool) (*service.Service, *metrics.Manager) {
	cfg := Config()
	m := metrics.NewTestManager()

	var c cache.Cache
	if withCache {
		c = cache.NewManager(cfg.Cache)
	}
	return service.NewService(cfg, p, c, queue.NewManager(cfg.Queue), m), m
}
