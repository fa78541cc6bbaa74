package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitforge/internal/core/ai/provider"
	"fitforge/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const providerName = "gemini"

// ErrNoContent 回應中沒有任何文字
var ErrNoContent = errors.New("No content received from Gemini API.")

// Client Gemini generateContent REST 客戶端
type Client struct {
	config provider.Config
	client *resty.Client
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// NewClient 創建 Gemini 客戶端
func NewClient(cfg provider.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 呼叫 generateContent，取第一個候選的第一段文字
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	body := buildRequest(req)

	common.LogDebug("Sending request to Gemini",
		zap.String("model", c.config.Model),
		zap.Int("contents", len(body.Contents)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", c.config.APIKey).
		SetBody(body).
		Post(fmt.Sprintf("/models/%s:generateContent", c.config.Model))
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Gemini: %w", err)
	}

	if resp.IsError() {
		common.LogError("Gemini API returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.config.Model),
		)
		return nil, fmt.Errorf("API Error: %s\n%s", resp.Status(), resp.String())
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 ||
		result.Candidates[0].Content.Parts[0].Text == "" {
		return nil, ErrNoContent
	}

	return &provider.Response{
		Content: result.Candidates[0].Content.Parts[0].Text,
		Usage: provider.Usage{
			PromptTokens:     result.UsageMetadata.PromptTokenCount,
			CompletionTokens: result.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      result.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

// buildRequest assistant 角色在 Gemini 稱為 model
func buildRequest(req *provider.Request) generateRequest {
	system, msgs := provider.SplitSystem(req)

	body := generateRequest{Contents: make([]content, 0, len(msgs))}
	for _, m := range msgs {
		role := provider.RoleUser
		if m.Role == provider.RoleAssistant {
			role = "model"
		}
		body.Contents = append(body.Contents, content{
			Role:  role,
			Parts: []part{{Text: m.Content}},
		})
	}

	if system != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	if req.MaxTokens > 0 || req.Temperature > 0 {
		body.GenerationConfig = &generationConfig{
			MaxOutputTokens: req.MaxTokens,
			Temperature:     req.Temperature,
		}
	}
	return body
}

// Name 提供者名稱
func (c *Client) Name() string {
	return providerName
}

// GetModel 模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 請求超時
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}

// Close 關閉閒置連線
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
