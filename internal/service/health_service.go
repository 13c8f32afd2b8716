package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
)

type clock interface {
	Now(ctx context.Context) (time.Time, error)
}

// HealthService probes database connectivity.
type HealthService struct {
	db      clock
	version string
	env     string
	logger  *zap.Logger
}

// NewHealthService constructs a HealthService.
func NewHealthService(db clock, version, env string, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{db: db, version: version, env: env, logger: logger}
}

// Check always returns a report. The error is non-nil when the database could
// not be reached, in which case the report says disconnected.
func (s *HealthService) Check(ctx context.Context) (*dto.Health, error) {
	report := &dto.Health{
		DatabaseStatus: dto.DatabaseDisconnected,
		Version:        s.version,
		Environment:    s.env,
	}

	now, err := s.db.Now(ctx)
	if err != nil {
		s.logger.Warn("database health check failed", zap.Error(err))
		return report, storeFailure(err, "server is running but the database connection failed")
	}

	report.DatabaseStatus = dto.DatabaseConnected
	report.DatabaseTime = &now
	return report, nil
}
