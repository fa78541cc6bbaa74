package handlers

import (
	"net/http"

	"fitforge/internal/core/ai/service"
	"fitforge/internal/core/parser"
	"fitforge/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler AI 中繼與內容分類
type AIHandler struct {
	aiService *service.Service
}

// NewAIHandler 創建 AI 處理器
func NewAIHandler(aiService *service.Service) *AIHandler {
	return &AIHandler{
		aiService: aiService,
	}
}

// Chat 中繼到設定的模型提供者；回應只有 text 或 error
func (h *AIHandler) Chat(c *gin.Context) {
	var req common.RelayRequest
	if err := BindJSON(c, &req, true); err != nil {
		status, _, msg := ErrorStatus(err)
		c.JSON(status, common.RelayResponse{Error: msg})
		return
	}

	text, err := h.aiService.Generate(c.Request.Context(), req)
	if err != nil {
		status, _, msg := ErrorStatus(err)
		common.LogError("Relay request failed",
			zap.String("request_id", requestid.Get(c)),
			zap.String("provider", h.aiService.ProviderName()),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.JSON(status, common.RelayResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, common.RelayResponse{Text: text})
}

// ParseRequest 分類請求
type ParseRequest struct {
	Text string `json:"text"`
	Hint string `json:"hint"`
}

// Parse 將模型文字分類為食譜、訓練或純文字
func (h *AIHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := BindJSON(c, &req, false); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parser.ParseAIContent(req.Text, req.Hint))
}
