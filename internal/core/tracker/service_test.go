package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"fitforge/internal/pkg/common"
	"fitforge/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStore 以 JSON 保存，避免測試共用指標
type mapStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves int
	err   error
}

func newMapStore() *mapStore {
	return &mapStore{data: map[string][]byte{}}
}

func (m *mapStore) Load(_ context.Context, userID string) (*AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	raw, ok := m.data[userID]
	if !ok {
		return nil, common.ErrStateNotFound
	}
	var st AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (m *mapStore) Save(_ context.Context, userID string, st *AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	m.data[userID] = raw
	m.saves++
	return nil
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestService() (*Service, *mapStore, *clock, *metrics.Manager) {
	store := newMapStore()
	clk := &clock{now: monday}
	m := metrics.NewTestManager()
	return NewService(store, WithClock(clk.Now), WithMetrics(m)), store, clk, m
}

func TestService_State_SeedsDefault(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	st, err := svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Nithin", st.User.Name)
	require.NotNil(t, st.LastVisitDate)
	assert.Equal(t, "2026-01-05", *st.LastVisitDate)
	assert.Equal(t, 1, store.saves)

	// 同一天再讀不需要寫入
	_, err = svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
}

func TestService_CheckInFlow(t *testing.T) {
	svc, _, clk, m := newTestService()
	ctx := context.Background()

	st, ok, err := svc.CheckIn(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, st.WorkoutStreak)

	_, ok, err = svc.CheckIn(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	// 隔天打卡延續連續天數
	clk.now = monday.AddDate(0, 0, 1)
	st, ok, err = svc.CheckIn(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, st.WorkoutStreak)
	assert.False(t, st.WorkoutPlan[1].Completed, "monday is reset on tuesday")

	// 中斷兩天後歸零
	clk.now = monday.AddDate(0, 0, 4)
	st, err = svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.WorkoutStreak)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterTrackerEvents.WithLabelValues("checkin")))
}

func TestService_Meals(t *testing.T) {
	svc, _, clk, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddMeal(ctx, "u1", 700, 45)
	require.NoError(t, err)
	st, err := svc.AddMeal(ctx, "u1", 300, 20)
	require.NoError(t, err)
	assert.Equal(t, float64(1000), st.Nutrition.Calories)

	st, undone, err := svc.UndoMeal(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, undone)
	assert.Equal(t, float64(700), st.Nutrition.Calories)

	_, err = svc.AddMeal(ctx, "u1", -5, 0)
	assert.True(t, common.IsValidationError(err))

	st, err = svc.ResetNutrition(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, float64(0), st.Nutrition.Calories)

	_, undone, err = svc.UndoMeal(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, undone)

	// 跨日清空
	_, err = svc.AddMeal(ctx, "u1", 400, 25)
	require.NoError(t, err)
	clk.now = monday.AddDate(0, 0, 1)
	st, err = svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, float64(0), st.Nutrition.Calories)
	assert.Empty(t, st.NutritionHistory)
}

func TestService_ProfileAndWeight(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	st, err := svc.UpdateWeight(ctx, "u1", 59.2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Start", "Month 1"}, st.WeightHistory.Labels)

	st, err = svc.SetReminder(ctx, "u1", "06:00")
	require.NoError(t, err)
	assert.Equal(t, "06:00", st.User.ReminderTime)

	_, err = svc.SetReminder(ctx, "u1", "6pm")
	assert.ErrorIs(t, err, common.ErrInvalidReminderTime)

	name := "Rahul"
	st, err = svc.UpdateProfile(ctx, "u1", ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Rahul", st.User.Name)

	// 失敗的操作不寫入
	st, err = svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "06:00", st.User.ReminderTime)
	assert.Equal(t, 59.2, st.User.CurrentWeight)
}

func TestService_UsersAreIsolated(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddMeal(ctx, "a", 500, 30)
	require.NoError(t, err)

	st, err := svc.State(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, float64(0), st.Nutrition.Calories)
}

func TestService_RemindersAndNotifications(t *testing.T) {
	svc, _, clk, _ := newTestService()
	ctx := context.Background()

	clk.now = at(17)
	reminders, err := svc.Reminders(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Workout Time!"}, reminderTimes(reminders))

	_, err = svc.SetReminder(ctx, "u1", "07:00")
	require.NoError(t, err)

	plan, err := svc.NotificationPlan(ctx, "u1", NotificationSchedule{DinnerTime: "20:15"})
	require.NoError(t, err)
	assert.Equal(t, 7, plan[0].Hour)
	assert.Equal(t, 6, plan[1].Hour)
	assert.Equal(t, 20, plan[4].Hour)
	assert.Equal(t, 15, plan[4].Minute)
}

func TestService_StoreError(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.err = errors.New("connection refused")

	_, err := svc.State(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
