package handler

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"time"

	"sellerchat/internal/response"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Health returns basic health check
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status    string                 `json:"status"`
	LatencyMs int64                  `json:"latency_ms,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Check probes one dependency.
type Check func(ctx context.Context) HealthCheckResult

// Ready runs every check concurrently and reports 503 unless all are up.
func Ready(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			mu      sync.Mutex
			wg      sync.WaitGroup
			results = make(map[string]HealthCheckResult, len(checks))
		)
		for name, check := range checks {
			wg.Add(1)
			go func(name string, check Check) {
				defer wg.Done()
				result := check(ctx)
				mu.Lock()
				results[name] = result
				mu.Unlock()
			}(name, check)
		}
		wg.Wait()

		status, code := "ready", http.StatusOK
		for _, result := range results {
			if result.Status != "up" {
				status, code = "not_ready", http.StatusServiceUnavailable
				break
			}
		}

		response.JSON(w, code, map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks":    results,
		})
	}
}

// SQLCheck pings db and reports pool statistics.
func SQLCheck(db *sql.DB) Check {
	return func(ctx context.Context) HealthCheckResult {
		start := time.Now()
		err := db.PingContext(ctx)
		latency := time.Since(start)
		if err != nil {
			return HealthCheckResult{Status: "down", LatencyMs: latency.Milliseconds(), Error: err.Error()}
		}

		stats := db.Stats()
		return HealthCheckResult{
			Status:    "up",
			LatencyMs: latency.Milliseconds(),
			Metadata: map[string]interface{}{
				"connections_open":   stats.OpenConnections,
				"connections_in_use": stats.InUse,
				"connections_idle":   stats.Idle,
				"max_open":           stats.MaxOpenConnections,
			},
		}
	}
}

// MongoCheck pings the primary.
func MongoCheck(client *mongo.Client) Check {
	return func(ctx context.Context) HealthCheckResult {
		start := time.Now()
		err := client.Ping(ctx, readpref.Primary())
		latency := time.Since(start)
		if err != nil {
			return HealthCheckResult{Status: "down", LatencyMs: latency.Milliseconds(), Error: err.Error()}
		}
		return HealthCheckResult{Status: "up", LatencyMs: latency.Milliseconds()}
	}
}

// ConnectionState is satisfied by *messaging.RabbitMQ.
type ConnectionState interface {
	IsClosed() bool
}

func BrokerCheck(conn ConnectionState) Check {
	return func(context.Context) HealthCheckResult {
		if conn.IsClosed() {
			return HealthCheckResult{Status: "down", Error: "connection closed"}
		}
		return HealthCheckResult{Status: "up"}
	}
}
