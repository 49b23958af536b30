package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current time. Billing math never reads time.Now directly
// so that status computations stay reproducible under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func NewSystemClock() Clock {
	return systemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
