package mongodb

import (
	"time"

	"sellerchat/internal/observability"
)

func observe(operation, collection string, start time.Time) {
	observability.DBQueryDuration.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
}
