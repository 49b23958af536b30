package revenue

import (
	"github.com/solostack/mentordesk/internal/revenue/service"
	"go.uber.org/fx"
)

var Module = fx.Module("revenue.service",
	fx.Provide(service.New),
)
