package postgres

import (
	"time"

	"sellerchat/internal/observability"
)

func observe(operation, table string, start time.Time) {
	observability.DBQueryDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
