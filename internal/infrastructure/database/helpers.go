package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Ping kiểm tra database connection có còn sống và responsive không
// Function này được gọi bởi health check endpoint
func (s *Store) Ping(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	// 5 giây là reasonable timeout - nếu DB không respond trong 5s thì có vấn đề
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.DB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close đóng tất cả connections trong pool và cleanup resources
// Safe to call multiple times - subsequent calls sẽ là no-op
func (s *Store) Close() error {
	if s.DB == nil {
		log.Info().Msg("[DATABASE] Pool is already closed or was never initialized")
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection pool...")

	err := s.DB.Close()
	if s.onClose != nil {
		s.onClose()
	}
	s.DB = nil

	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Info().Msg("[DATABASE] Connection pool closed successfully")
	return nil
}

// PoolStats chứa thống kê về connection pool
// Struct này được dùng cho health endpoint và monitoring
type PoolStats struct {
	Driver             string        `json:"driver"`
	MaxOpenConnections int           `json:"max_open_connections"` // Max connections configured
	OpenConnections    int           `json:"open_connections"`     // InUse + Idle
	InUse              int           `json:"in_use"`               // Connections hiện đang được used
	Idle               int           `json:"idle"`                 // Connections idle, sẵn sàng dùng
	WaitCount          int64         `json:"wait_count"`           // Số lần phải chờ connection
	WaitDuration       time.Duration `json:"wait_duration"`        // Tổng thời gian chờ
	MaxIdleClosed      int64         `json:"max_idle_closed"`
	MaxLifetimeClosed  int64         `json:"max_lifetime_closed"`
}

// Stats trả về snapshot của connection pool statistics
// PostgreSQL: đọc từ pgxpool.Stat() vì *sql.DB chỉ là view, DBStats của nó không phản ánh pool
func (s *Store) Stats() (*PoolStats, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	if s.pg != nil && s.pg.Pool != nil {
		raw := s.pg.Pool.Stat()
		return &PoolStats{
			Driver:             s.Dialect.Name,
			MaxOpenConnections: int(raw.MaxConns()),
			OpenConnections:    int(raw.TotalConns()),
			InUse:              int(raw.AcquiredConns()),
			Idle:               int(raw.IdleConns()),
			WaitCount:          raw.AcquireCount(),    // Total acquisition attempts
			WaitDuration:       raw.AcquireDuration(), // Total time spent acquiring
			MaxIdleClosed:      raw.MaxIdleDestroyCount(),
			MaxLifetimeClosed:  raw.MaxLifetimeDestroyCount(),
		}, nil
	}

	raw := s.DB.Stats()
	return &PoolStats{
		Driver:             s.Dialect.Name,
		MaxOpenConnections: raw.MaxOpenConnections,
		OpenConnections:    raw.OpenConnections,
		InUse:              raw.InUse,
		Idle:               raw.Idle,
		WaitCount:          raw.WaitCount,
		WaitDuration:       raw.WaitDuration,
		MaxIdleClosed:      raw.MaxIdleClosed,
		MaxLifetimeClosed:  raw.MaxLifetimeClosed,
	}, nil
}

// calculateAvgDuration là helper để tính average wait duration
func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}

// StartPoolMonitor chạy MonitorPoolHealth trong goroutine riêng.
// stop cancel monitor và block cho tới khi goroutine return, nên gọi stop trước Close.
func (s *Store) StartPoolMonitor(ctx context.Context, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		s.MonitorPoolHealth(ctx, interval)
	}()

	return func() {
		cancel()
		<-done
	}
}

// MonitorPoolHealth continuously monitors pool statistics và alert on issues
// Function này nên chạy trong separate goroutine, dừng khi ctx bị cancel
func (s *Store) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastWaitCount int64
	for {
		select {
		case <-ticker.C:
			stats, err := s.Stats()
			if err != nil {
				log.Warn().Err(err).Msg("[MONITOR] Failed to get stats")
				continue
			}

			// === CHECK POOL EXHAUSTION ===
			if stats.MaxOpenConnections > 0 {
				utilizationPct := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
				if utilizationPct > 80 {
					log.Warn().Msgf("[MONITOR] HIGH POOL UTILIZATION: %.1f%% (%d/%d)",
						utilizationPct, stats.InUse, stats.MaxOpenConnections)
				}
			}

			// === CHECK ACQUIRE WAIT TIME ===
			if stats.WaitCount > lastWaitCount {
				avgWait := calculateAvgDuration(stats.WaitDuration, stats.WaitCount)
				if avgWait > 100*time.Millisecond {
					log.Warn().Msgf("[MONITOR] HIGH ACQUIRE LATENCY: %v", avgWait)
				}
				lastWaitCount = stats.WaitCount
			}

		case <-ctx.Done():
			log.Info().Msg("[MONITOR] Stopping pool health monitoring")
			return
		}
	}
}
