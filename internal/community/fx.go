package community

import (
	"github.com/solostack/mentordesk/internal/community/service"
	"go.uber.org/fx"
)

var Module = fx.Module("community.service",
	fx.Provide(service.New),
)
