package chat

import (
	"github.com/solostack/mentordesk/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.chat",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	if cfg.Chat.BaseURL == "" || cfg.Chat.APIKey == "" {
		return &NoOpProvider{}
	}
	return NewHTTP(Config{
		BaseURL: cfg.Chat.BaseURL,
		APIKey:  cfg.Chat.APIKey,
		Model:   cfg.Chat.Model,
	})
}
