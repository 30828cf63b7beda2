package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"donorcrm-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// StorageProbe runs a cheap read against application tables.
type StorageProbe interface {
	Check(ctx context.Context) error
}

// Dependency states.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusError        = "error"
)

// CollectResult is the /health report: overall status, runtime, Redis traffic counters and dependency checks.
type CollectResult struct {
	Status       string               `json:"status"`
	Timestamp    time.Time            `json:"timestamp"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
	Error  string      `json:"error,omitempty"`
}

// Ready reports whether the service can take traffic: database and storage must be connected,
// and Redis too when it is configured.
func (r CollectResult) Ready() bool {
	return r.Status == "ok"
}

var processStart = time.Now()

// CollectHealth gathers dependency checks and the traffic counters HealthMarker keeps in Redis.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger, storage StorageProbe) CollectResult {
	result := CollectResult{
		Timestamp:    time.Now().UTC(),
		Dependencies: make(map[string]DepStatus),
	}

	result.Dependencies["database"] = probe(db != nil, func() error { return db.Ping() })
	result.Dependencies["storage"] = probe(storage != nil, func() error { return storage.Check(ctx) })

	redisDep := DepStatus{Status: StatusDisconnected}
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	startTimeMs := processStart.UnixMilli()

	if rdb != nil {
		redisDep = probe(true, func() error { return rdb.Ping(ctx).Err() })
		if redisDep.Status == StatusConnected {
			totalReq, _ := rdb.Get(ctx, middleware.KeyReqTotal).Result()
			totalErr, _ := rdb.Get(ctx, middleware.KeyReqErrors).Result()
			totalTime, _ := rdb.Get(ctx, middleware.KeyResTime).Result()
			resCount, _ := rdb.Get(ctx, middleware.KeyResCount).Result()
			startTimeStr, _ := rdb.Get(ctx, middleware.KeyStartTime).Result()
			lastReqStr, _ := rdb.Get(ctx, middleware.KeyLastReq).Result()

			if startTimeStr != "" {
				if t, err := strconv.ParseInt(startTimeStr, 10, 64); err == nil {
					startTimeMs = t
				}
			} else {
				rdb.Set(ctx, middleware.KeyStartTime, startTimeMs, 0)
			}

			stats.TotalRequests, _ = strconv.Atoi(totalReq)
			stats.FailedCount, _ = strconv.Atoi(totalErr)
			stats.SuccessCount = stats.TotalRequests - stats.FailedCount
			if stats.TotalRequests > 0 {
				stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
			}
			timeSum, _ := strconv.ParseFloat(totalTime, 64)
			countSum, _ := strconv.Atoi(resCount)
			if countSum > 0 {
				stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(countSum), 'f', 2, 64)
			}
			if lastReqStr != "" {
				var lastReq map[string]interface{}
				_ = json.Unmarshal([]byte(lastReqStr), &lastReq)
				stats.LastRequest = lastReq
			}
		}
	}
	result.Dependencies["redis"] = redisDep
	result.Traffic = stats

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptimeSec := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptimeSec < 0 {
		uptimeSec = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptimeSec,
		Memory:        MemoryInfo{Alloc: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	redisOK := rdb == nil || redisDep.Status == StatusConnected
	if result.Dependencies["database"].Status == StatusConnected &&
		result.Dependencies["storage"].Status == StatusConnected && redisOK {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

func probe(configured bool, check func() error) DepStatus {
	if !configured {
		return DepStatus{Status: StatusDisconnected}
	}
	start := time.Now()
	if err := check(); err != nil {
		return DepStatus{Status: StatusError, Error: err.Error()}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: StatusConnected, PingMs: ms}
}

// ResetStats clears the traffic counters and error log and restarts the uptime clock.
func ResetStats(ctx context.Context, rdb *redis.Client) error {
	keys := []string{
		middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime, middleware.KeyResCount,
		middleware.KeyStartTime, middleware.KeyLastReq, middleware.KeyErrorLog,
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	return rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err()
}

// RecentErrors returns up to middleware.ErrorLogSize error log entries, newest first.
func RecentErrors(ctx context.Context, rdb *redis.Client) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0)
	if rdb == nil {
		return out, nil
	}
	entries, err := rdb.LRange(ctx, middleware.KeyErrorLog, 0, middleware.ErrorLogSize-1).Result()
	if err != nil {
		return nil, err
	}
	for _, s := range entries {
		var m map[string]interface{}
		if _ = json.Unmarshal([]byte(s), &m); m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}
