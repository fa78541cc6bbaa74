package coach

import (
	"net/http"

	"fitforge/internal/api/handlers"
	coachService "fitforge/internal/core/coach"
	"fitforge/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AskRequest 教練問答
type AskRequest struct {
	Question string `json:"question"`
}

// VariationsRequest 替代動作
type VariationsRequest struct {
	Day string `json:"day"`
}

// TextResponse 純文字結果
type TextResponse struct {
	Text string `json:"text"`
}

// Handler AI 教練處理程序
type Handler struct {
	coach *coachService.Service
}

// NewHandler 創建教練處理程序
func NewHandler(coach *coachService.Service) *Handler {
	return &Handler{coach: coach}
}

// Register 註冊 /coach 路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/motivation", h.HandleMotivation)
	rg.POST("/ask", h.HandleAsk)
	rg.POST("/workout", h.HandleWorkout)
	rg.POST("/variations", h.HandleVariations)
	rg.POST("/meal", h.HandleMeal)
	rg.POST("/meal-plan", h.HandleMealPlan)
	rg.POST("/recipe", h.HandleRecipe)
	rg.POST("/progress", h.HandleProgress)
}

func logStart(c *gin.Context, feature string) {
	common.LogInfo("Coach request",
		zap.String("feature", feature),
		zap.String("request_id", requestid.Get(c)),
		zap.String("user_id", handlers.UserID(c)),
	)
}

// HandleMotivation 每日激勵語
func (h *Handler) HandleMotivation(c *gin.Context) {
	logStart(c, "motivation")
	text, err := h.coach.Motivation(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: text})
}

// HandleAsk 教練問答
func (h *Handler) HandleAsk(c *gin.Context) {
	logStart(c, "ask")
	var req AskRequest
	if err := handlers.BindJSON(c, &req, false); err != nil {
		handlers.RespondError(c, err)
		return
	}

	text, err := h.coach.Ask(c.Request.Context(), handlers.UserID(c), req.Question)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: text})
}

// HandleWorkout 生成訓練，選項皆可省略
func (h *Handler) HandleWorkout(c *gin.Context) {
	logStart(c, "workout")
	var opts coachService.WorkoutOptions
	if err := handlers.BindJSON(c, &opts, true); err != nil {
		handlers.RespondError(c, err)
		return
	}

	result, err := h.coach.GenerateWorkout(c.Request.Context(), handlers.UserID(c), opts)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleVariations 替代動作建議
func (h *Handler) HandleVariations(c *gin.Context) {
	logStart(c, "variations")
	var req VariationsRequest
	if err := handlers.BindJSON(c, &req, false); err != nil {
		handlers.RespondError(c, err)
		return
	}

	result, err := h.coach.WorkoutVariations(c.Request.Context(), handlers.UserID(c), req.Day)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleMeal 下一餐建議
func (h *Handler) HandleMeal(c *gin.Context) {
	logStart(c, "meal")
	text, err := h.coach.SuggestMeal(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: text})
}

// HandleMealPlan 七日餐單
func (h *Handler) HandleMealPlan(c *gin.Context) {
	logStart(c, "meal_plan")
	plan, err := h.coach.WeeklyMealPlan(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// HandleRecipe 結構化食譜
func (h *Handler) HandleRecipe(c *gin.Context) {
	logStart(c, "recipe")
	var opts coachService.RecipeOptions
	if err := handlers.BindJSON(c, &opts, true); err != nil {
		handlers.RespondError(c, err)
		return
	}

	result, err := h.coach.Recipe(c.Request.Context(), handlers.UserID(c), opts)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleProgress 進度分析
func (h *Handler) HandleProgress(c *gin.Context) {
	logStart(c, "progress")
	text, err := h.coach.ProgressSummary(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: text})
}
