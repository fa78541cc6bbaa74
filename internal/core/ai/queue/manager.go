package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"

	"go.uber.org/zap"
)

// Job 佇列中執行的生成工作
type Job func(ctx context.Context) (string, error)

// Request 隊列請求
type Request struct {
	Context context.Context
	Job     Job
	Result  chan Result
}

// Result 處理結果
type Result struct {
	Text  string
	Error error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	FailedCount    int64 `json:"failed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 隊列管理器，固定數量的 worker 消化有上限的佇列
type Manager struct {
	config    config.QueueConfig
	queue     chan *Request
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	processed int64
	failed    int64
}

// NewManager 創建新的隊列管理器並啟動 worker
func NewManager(cfg config.QueueConfig) *Manager {
	m := &Manager{
		config: cfg,
		queue:  make(chan *Request, cfg.MaxSize),
	}

	for i := 0; i < cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	common.LogInfo("Queue manager started",
		zap.Int("workers", cfg.Workers),
		zap.Int("max_queue_size", cfg.MaxSize),
	)
	return m
}

// Submit 將工作加入佇列並等待結果；佇列已滿時立即回傳 ErrQueueFull
func (m *Manager) Submit(ctx context.Context, job Job) (string, error) {
	req := &Request{
		Context: ctx,
		Job:     job,
		Result:  make(chan Result, 1),
	}

	if err := m.enqueue(req); err != nil {
		return "", err
	}

	select {
	case res := <-req.Result:
		return res.Text, res.Error
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *Manager) enqueue(req *Request) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return common.ErrQueueClosed
	}

	select {
	case m.queue <- req:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.config.MaxSize),
		)
		return nil
	default:
		common.LogWarn("Queue is full",
			zap.Int("max_queue_size", m.config.MaxSize),
		)
		return common.ErrQueueFull
	}
}

func (m *Manager) worker(id int) {
	defer m.wg.Done()

	for req := range m.queue {
		// 呼叫端已放棄時不再送出請求
		if err := req.Context.Err(); err != nil {
			atomic.AddInt64(&m.failed, 1)
			req.Result <- Result{Error: err}
			continue
		}

		text, err := req.Job(req.Context)
		if err != nil {
			atomic.AddInt64(&m.failed, 1)
			common.LogDebug("Queue job failed", zap.Int("worker", id), zap.Error(err))
		} else {
			atomic.AddInt64(&m.processed, 1)
		}
		req.Result <- Result{Text: text, Error: err}
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: atomic.LoadInt64(&m.processed),
		FailedCount:    atomic.LoadInt64(&m.failed),
		MaxQueueSize:   m.config.MaxSize,
		Workers:        m.config.Workers,
	}
}

// Close 停止接收新工作，等待 worker 處理完已排入的工作
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()

	m.wg.Wait()
	common.LogInfo("Queue manager stopped",
		zap.Int64("processed", atomic.LoadInt64(&m.processed)),
		zap.Int64("failed", atomic.LoadInt64(&m.failed)),
	)
}
