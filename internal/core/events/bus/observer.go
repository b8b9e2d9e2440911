package bus

import (
	"time"

	"github.com/zeusync/hotreload/internal/core/observability/log"
)

// LogObserver writes every delivery to a logger at debug level, and failed ones
// at warn level.
type LogObserver struct {
	logger log.Log
}

func NewLogObserver(logger log.Log) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnDelivered(eventType string, handlers int, err error, duration time.Duration) {
	fields := []log.Field{
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Duration("took", duration),
	}
	if err != nil {
		o.logger.Warn("event handlers failed", append(fields, log.Error(err))...)
		return
	}
	o.logger.Debug("event delivered", fields...)
}
