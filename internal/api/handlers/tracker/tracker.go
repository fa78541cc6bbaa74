package tracker

import (
	"net/http"
	"time"

	"fitforge/internal/api/handlers"
	trackerService "fitforge/internal/core/tracker"

	"github.com/gin-gonic/gin"
)

// MealRequest 新增餐點
type MealRequest struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// ReminderRequest 訓練提醒時間
type ReminderRequest struct {
	Time string `json:"time"`
}

// WeightRequest 新體重 (kg)
type WeightRequest struct {
	Weight float64 `json:"weight"`
}

// StateResponse 狀態與常用的衍生欄位
type StateResponse struct {
	State           *trackerService.AppState `json:"state"`
	TodaysWorkout   *trackerService.Workout  `json:"todaysWorkout"`
	Age             int                      `json:"age"`
	HeightFormatted string                   `json:"heightFormatted"`
	CheckedIn       *bool                    `json:"checkedIn,omitempty"`
	Undone          *bool                    `json:"undone,omitempty"`
}

// Handler 追蹤狀態處理程序
type Handler struct {
	tracker *trackerService.Service
}

// NewHandler 創建追蹤處理程序
func NewHandler(tracker *trackerService.Service) *Handler {
	return &Handler{tracker: tracker}
}

// Register 註冊 /tracker 路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/state", h.HandleState)
	rg.POST("/checkin", h.HandleCheckIn)
	rg.POST("/meals", h.HandleAddMeal)
	rg.POST("/meals/undo", h.HandleUndoMeal)
	rg.POST("/meals/reset", h.HandleResetNutrition)
	rg.POST("/reminder", h.HandleSetReminder)
	rg.POST("/weight", h.HandleUpdateWeight)
	rg.POST("/profile", h.HandleUpdateProfile)
	rg.GET("/reminders", h.HandleReminders)
	rg.POST("/notifications", h.HandleNotifications)
}

func (h *Handler) response(st *trackerService.AppState) StateResponse {
	now := h.tracker.Now()
	age, _ := trackerService.CalculateAge(st.User.DOB, now)
	return StateResponse{
		State:           st,
		TodaysWorkout:   st.TodaysWorkout(now),
		Age:             age,
		HeightFormatted: trackerService.FormatHeight(st.User.CurrentHeight),
	}
}

// HandleState 目前狀態
func (h *Handler) HandleState(c *gin.Context) {
	st, err := h.tracker.State(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(st))
}

// HandleCheckIn 今日打卡
func (h *Handler) HandleCheckIn(c *gin.Context) {
	st, ok, err := h.tracker.CheckIn(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	resp := h.response(st)
	resp.CheckedIn = &ok
	c.JSON(http.StatusOK, resp)
}

// HandleAddMeal 新增餐點
func (h *Handler) HandleAddMeal(c *gin.Context) {
	var req MealRequest
	if err := handlers.BindJSON(c, &req, false); err != nil {
		handlers.RespondError(c, err)
		return
	}
	st, err := h.tracker.AddMeal(c.Request.Context(), handlers.UserID(c), req.Calories, req.Protein)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(st))
}

// HandleUndoMeal 復原上一餐
func (h *Handler) HandleUndoMeal(c *gin.Context) {
	st, undone, err := h.tracker.UndoMeal(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	resp := h.response(st)
	resp.Undone = &undone
	c.JSON(http.StatusOK, resp)
}

// HandleResetNutrition 今日攝取量歸零
func (h *Handler) HandleResetNutrition(c *gin.Context) {
	st, err := h.tracker.ResetNutrition(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(st))
}

// HandleSetReminder 設定提醒時間
func (h *Handler) HandleSetReminder(c *gin.Context) {
	var req ReminderRequest
	if err := handlers.BindJSON(c, &req, false); err != nil {
		handlers.RespondError(c, err)
		return
	}
	st, err := h.tracker.SetReminder(c.Request.Context(), handlers.UserID(c), req.Time)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(st))
}

// HandleUpdateWeight 記錄體重
func (h *Handler) HandleUpdateWeight(c *gin.Context) {
	var req WeightRequest
	if err := handlers.BindJSON(c, &req, false); err != nil {
		handlers.RespondError(c, err)
		return
	}
	st, err := h.tracker.UpdateWeight(c.Request.Context(), handlers.UserID(c), req.Weight)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(st))
}

// HandleUpdateProfile 更新個人資料，只修改有提供的欄位
func (h *Handler) HandleUpdateProfile(c *gin.Context) {
	var patch trackerService.ProfilePatch
	if err := handlers.BindJSON(c, &patch, false); err != nil {
		handlers.RespondError(c, err)
		return
	}
	st, err := h.tracker.UpdateProfile(c.Request.Context(), handlers.UserID(c), patch)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(st))
}

// HandleReminders 目前時段的提醒卡片
func (h *Handler) HandleReminders(c *gin.Context) {
	reminders, err := h.tracker.Reminders(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reminders":   reminders,
		"generatedAt": h.tracker.Now().Format(time.RFC3339),
	})
}

// HandleNotifications 每日通知排程，未提供的時間使用預設值
func (h *Handler) HandleNotifications(c *gin.Context) {
	var schedule trackerService.NotificationSchedule
	if err := handlers.BindJSON(c, &schedule, true); err != nil {
		handlers.RespondError(c, err)
		return
	}
	plan, err := h.tracker.NotificationPlan(c.Request.Context(), handlers.UserID(c), schedule)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": plan})
}
