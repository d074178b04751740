package mpsc

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/onsails/mpsc/telemetry"
)

// Params are used to pass optional args into NewChannel.
type Params struct {
	// ID labels the channel in metrics and log events. A random UUID is
	// assigned when left empty.
	ID string
	// Logger receives debug events for closure transitions. Defaults to a
	// no-op logger.
	Logger *zerolog.Logger
	// Collector receives channel telemetry. Defaults to telemetry.Noop().
	Collector telemetry.Collector
}

func applyParams(params ...Params) Params {
	var p Params
	for _, param := range params {
		p = param
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Logger == nil {
		nop := zerolog.Nop()
		p.Logger = &nop
	}
	if p.Collector == nil {
		p.Collector = telemetry.Noop()
	}
	return p
}
