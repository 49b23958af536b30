package call

import (
	"github.com/solostack/mentordesk/internal/call/service"
	"go.uber.org/fx"
)

var Module = fx.Module("call.service",
	fx.Provide(service.New),
)
