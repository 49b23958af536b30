package note

import (
	"github.com/solostack/mentordesk/internal/note/service"
	"go.uber.org/fx"
)

var Module = fx.Module("note.service",
	fx.Provide(service.New),
)
