package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fitforge/internal/core/ai/provider"
	"fitforge/internal/pkg/common"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
	"go.uber.org/zap"
)

const providerName = "ollama"

// Client 本機 Ollama 客戶端
type Client struct {
	config provider.Config
	client *api.Client
}

// NewClient 創建 Ollama 客戶端，host 為空時使用 OLLAMA_HOST
func NewClient(cfg provider.Config) (*Client, error) {
	hostURL := envconfig.Host()
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host %q: %w", cfg.BaseURL, err)
		}
		hostURL = u
	}

	return &Client{
		config: cfg,
		client: api.NewClient(hostURL, &http.Client{Timeout: cfg.Timeout}),
	}, nil
}

// Generate 以 Chat API 生成回應，串流片段累加為完整文字
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	system, msgs := provider.SplitSystem(req)

	messages := make([]api.Message, 0, len(msgs)+1)
	if system != "" {
		messages = append(messages, api.Message{Role: provider.RoleSystem, Content: system})
	}
	for _, m := range msgs {
		messages = append(messages, api.Message{Role: m.Role, Content: m.Content})
	}

	stream := false
	chatReq := &api.ChatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   &stream,
		Options:  map[string]interface{}{},
	}
	if req.Temperature > 0 {
		chatReq.Options["temperature"] = req.Temperature
	}
	if req.MaxTokens > 0 {
		chatReq.Options["num_predict"] = req.MaxTokens
	}

	common.LogDebug("Sending request to Ollama",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(messages)),
	)

	var builder strings.Builder
	var usage provider.Usage
	err := c.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		builder.WriteString(resp.Message.Content)
		if resp.Done {
			usage = provider.Usage{
				PromptTokens:     resp.PromptEvalCount,
				CompletionTokens: resp.EvalCount,
				TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate response: %w", err)
	}

	content := builder.String()
	if content == "" {
		return nil, fmt.Errorf("empty content in Ollama response")
	}

	return &provider.Response{Content: content, Usage: usage}, nil
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

// Close Ollama 客戶端沒有需要釋放的資源
func (c *Client) Close() error {
	return nil
}
