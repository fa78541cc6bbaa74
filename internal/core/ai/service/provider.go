package service

import (
	"fitforge/internal/core/ai/gemini"
	"fitforge/internal/core/ai/ollama"
	"fitforge/internal/core/ai/openrouter"
	"fitforge/internal/core/ai/provider"
	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"

	"go.uber.org/zap"
)

// NewProvider 依 ai.provider 建立提供者
func NewProvider(cfg *config.Config) (provider.Provider, error) {
	var (
		p   provider.Provider
		err error
	)

	switch cfg.AI.Provider {
	case config.ProviderGemini:
		p = gemini.NewClient(provider.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.AI.Timeout,
			BaseURL: cfg.Gemini.BaseURL,
		})
	case config.ProviderOpenRouter:
		p = openrouter.NewClient(provider.Config{
			APIKey:  cfg.OpenRouter.APIKey,
			Model:   cfg.OpenRouter.Model,
			Timeout: cfg.AI.Timeout,
			BaseURL: cfg.OpenRouter.BaseURL,
		}, cfg.OpenRouter.Referer, cfg.OpenRouter.Title)
	case config.ProviderOllama:
		p, err = ollama.NewClient(provider.Config{
			Model:   cfg.Ollama.Model,
			Timeout: cfg.AI.Timeout,
			BaseURL: cfg.Ollama.Host,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, common.ErrUnsupportedProvider
	}

	common.LogInfo("AI provider initialized",
		zap.String("provider", p.Name()),
		zap.String("model", p.GetModel()),
		zap.Duration("timeout", p.GetTimeout()),
	)
	return p, nil
}
