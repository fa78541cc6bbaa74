package common

import "strings"

// ChatMessage 對話訊息，沿用前端的 role/content 格式
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RelayRequest 中繼端點請求，prompt 與 messages 擇一
type RelayRequest struct {
	Prompt       string        `json:"prompt,omitempty"`
	Messages     []ChatMessage `json:"messages,omitempty"`
	SystemPrompt string        `json:"systemPrompt,omitempty"`
}

// RelayResponse 中繼端點響應，成功時只有 text，失敗時只有 error
type RelayResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// Normalize 整理請求：prompt 轉為單一 user 訊息，去除空白訊息
func (r RelayRequest) Normalize() ([]ChatMessage, error) {
	var msgs []ChatMessage
	for _, m := range r.Messages {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role == "" {
			role = "user"
		}
		msgs = append(msgs, ChatMessage{Role: role, Content: content})
	}

	if prompt := strings.TrimSpace(r.Prompt); prompt != "" {
		msgs = append(msgs, ChatMessage{Role: "user", Content: prompt})
	}

	if len(msgs) == 0 {
		return nil, ErrPromptRequired
	}
	return msgs, nil
}
