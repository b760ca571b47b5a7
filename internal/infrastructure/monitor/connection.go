package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Check probes one dependency. A failing required check marks the service degraded.
type Check struct {
	Name     string
	Required bool
	Timeout  time.Duration
	Probe    func(ctx context.Context) error
}

// PostgresCheck pings the pool; the database is required for every read and write.
func PostgresCheck(pool *pgxpool.Pool) Check {
	return Check{
		Name:     "postgresql",
		Required: true,
		Timeout:  3 * time.Second,
		Probe:    pool.Ping,
	}
}

// RedisCheck pings the session store. Losing it disables refresh and revocation only.
func RedisCheck(client *redislib.Client) Check {
	return Check{
		Name:    "redis",
		Timeout: 2 * time.Second,
		Probe: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

type Monitor struct {
	checks []Check

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(interval time.Duration, logger *zap.Logger, checks ...Check) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		checks:   checks,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Start probes once synchronously so the first health request sees real state,
// then keeps refreshing in the background until Stop.
func (m *Monitor) Start() {
	m.refresh()
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.clone()
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Services:  make(map[string]bool, len(m.checks)),
		Healthy:   true,
		LastCheck: time.Now(),
	}
	for _, check := range m.checks {
		ok := m.probe(check)
		status.Services[check.Name] = ok
		if !ok && check.Required {
			status.Healthy = false
		}
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if !previous.LastCheck.IsZero() && previous.Healthy != status.Healthy {
		m.logger.Info("dependency state changed",
			zap.Bool("healthy", status.Healthy),
			zap.Any("services", status.Services))
	}
}

func (m *Monitor) probe(check Check) bool {
	timeout := check.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := check.Probe(ctx); err != nil {
		m.logger.Debug("health probe failed", zap.String("service", check.Name), zap.Error(err))
		return false
	}
	return true
}
