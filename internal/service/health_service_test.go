package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

type fakeClock struct {
	now time.Time
	err error
}

func (f fakeClock) Now(context.Context) (time.Time, error) {
	return f.now, f.err
}

func TestHealthServiceConnected(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewHealthService(fakeClock{now: now}, "1.0.0", "development", nil)

	report, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.DatabaseConnected, report.DatabaseStatus)
	assert.Equal(t, now, *report.DatabaseTime)
	assert.Equal(t, "1.0.0", report.Version)
}

func TestHealthServiceDisconnected(t *testing.T) {
	svc := NewHealthService(fakeClock{err: appErrors.WrapAs(appErrors.ErrDataUnavailable, errors.New("dial tcp: refused"), "")}, "1.0.0", "production", nil)

	report, err := svc.Check(context.Background())
	require.Error(t, err)
	assert.Equal(t, dto.DatabaseDisconnected, report.DatabaseStatus)
	assert.Nil(t, report.DatabaseTime)
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}
