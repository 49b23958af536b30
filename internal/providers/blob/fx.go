package blob

import (
	"github.com/solostack/mentordesk/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.blob",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	if cfg.UploadDir == "" {
		return &NoOpProvider{}
	}
	return NewDisk(cfg.UploadDir, cfg.PublicBaseURL)
}
