package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitforge/internal/pkg/common"
	"fitforge/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Store 追蹤狀態的持久化介面，找不到時回傳 common.ErrStateNotFound
type Store interface {
	Load(ctx context.Context, userID string) (*AppState, error)
	Save(ctx context.Context, userID string, state *AppState) error
}

// Service 追蹤服務，每個操作都是 載入、修改、儲存
type Service struct {
	store   Store
	now     func() time.Time
	metrics *metrics.Manager
	mu      sync.Mutex
}

// Option 服務選項
type Option func(*Service)

// WithClock 注入時鐘
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithMetrics 記錄狀態變動次數
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService 創建追蹤服務
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now 服務使用的目前時間
func (s *Service) Now() time.Time {
	return s.now()
}

// load 讀取狀態，不存在時使用預設狀態，並套用跨日重置
func (s *Service) load(ctx context.Context, userID string) (*AppState, bool, error) {
	state, err := s.store.Load(ctx, userID)
	dirty := false
	switch {
	case err == nil:
	case errors.Is(err, common.ErrStateNotFound):
		common.LogInfo("Seeding default tracker state", zap.String("user_id", userID))
		state = DefaultState()
		dirty = true
	default:
		return nil, false, fmt.Errorf("failed to load tracker state: %w", err)
	}

	if state.ResetDaily(s.now()) {
		dirty = true
	}
	return state, dirty, nil
}

// update 在鎖內完成 載入、修改、儲存；fn 回傳 false 時不儲存修改
func (s *Service) update(ctx context.Context, userID, event string, fn func(st *AppState, now time.Time) (bool, error)) (*AppState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, dirty, err := s.load(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	changed, err := fn(state, s.now())
	if err != nil {
		return nil, false, err
	}

	if changed || dirty {
		if err := s.store.Save(ctx, userID, state); err != nil {
			return nil, false, fmt.Errorf("failed to save tracker state: %w", err)
		}
	}

	if changed && s.metrics != nil {
		s.metrics.CounterTrackerEvents.WithLabelValues(event).Inc()
	}
	return state, changed, nil
}

// State 目前狀態
func (s *Service) State(ctx context.Context, userID string) (*AppState, error) {
	state, _, err := s.update(ctx, userID, "state", func(*AppState, time.Time) (bool, error) {
		return false, nil
	})
	return state, err
}

// CheckIn 今日訓練打卡，已打卡時 checkedIn 為 false
func (s *Service) CheckIn(ctx context.Context, userID string) (state *AppState, checkedIn bool, err error) {
	return s.update(ctx, userID, "checkin", func(st *AppState, now time.Time) (bool, error) {
		return st.CheckIn(now), nil
	})
}

// AddMeal 新增一餐
func (s *Service) AddMeal(ctx context.Context, userID string, calories, protein float64) (*AppState, error) {
	state, _, err := s.update(ctx, userID, "meal_added", func(st *AppState, _ time.Time) (bool, error) {
		return true, st.AddMeal(calories, protein)
	})
	return state, err
}

// UndoMeal 復原上一餐，沒有可復原的紀錄時 undone 為 false
func (s *Service) UndoMeal(ctx context.Context, userID string) (state *AppState, undone bool, err error) {
	return s.update(ctx, userID, "meal_undone", func(st *AppState, _ time.Time) (bool, error) {
		return st.UndoMeal(), nil
	})
}

// ResetNutrition 今日攝取量歸零
func (s *Service) ResetNutrition(ctx context.Context, userID string) (*AppState, error) {
	state, _, err := s.update(ctx, userID, "nutrition_reset", func(st *AppState, _ time.Time) (bool, error) {
		st.ResetNutrition()
		return true, nil
	})
	return state, err
}

// SetReminder 設定訓練提醒時間
func (s *Service) SetReminder(ctx context.Context, userID, hhmm string) (*AppState, error) {
	state, _, err := s.update(ctx, userID, "reminder_set", func(st *AppState, _ time.Time) (bool, error) {
		return true, st.SetReminder(hhmm)
	})
	return state, err
}

// UpdateWeight 記錄新體重
func (s *Service) UpdateWeight(ctx context.Context, userID string, kg float64) (*AppState, error) {
	state, _, err := s.update(ctx, userID, "weight_updated", func(st *AppState, _ time.Time) (bool, error) {
		return true, st.UpdateWeight(kg)
	})
	return state, err
}

// UpdateProfile 更新個人資料
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*AppState, error) {
	state, _, err := s.update(ctx, userID, "profile_updated", func(st *AppState, _ time.Time) (bool, error) {
		return true, st.UpdateProfile(patch)
	})
	return state, err
}

// Reminders 目前時段的提醒
func (s *Service) Reminders(ctx context.Context, userID string) ([]Reminder, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	return state.Reminders(s.now()), nil
}

// NotificationPlan 通知排程；未指定訓練時間時使用使用者的提醒時間
func (s *Service) NotificationPlan(ctx context.Context, userID string, schedule NotificationSchedule) ([]Notification, error) {
	if schedule.WorkoutTime == "" {
		state, err := s.State(ctx, userID)
		if err != nil {
			return nil, err
		}
		schedule.WorkoutTime = state.User.ReminderTime
	}
	return BuildNotificationPlan(schedule.WithDefaults(schedule.WorkoutTime))
}
