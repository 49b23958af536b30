package student

import (
	"github.com/solostack/mentordesk/internal/student/repository"
	"github.com/solostack/mentordesk/internal/student/service"
	"go.uber.org/fx"
)

var Module = fx.Module("student.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
