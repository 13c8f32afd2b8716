package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/repository"
)

type statusCounter interface {
	StatsByStatus(ctx context.Context) ([]models.CountRow, error)
}

// SummaryService builds the combined dashboard overview.
type SummaryService struct {
	teachers statusCounter
	students statusCounter
	logger   *zap.Logger
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(teachers, students statusCounter, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{teachers: teachers, students: students, logger: logger}
}

// Summary fetches both status breakdowns concurrently. Either failure fails
// the whole overview.
func (s *SummaryService) Summary(ctx context.Context) (*dto.Summary, error) {
	var teacherRows, studentRows []models.CountRow
	err := repository.Parallel(ctx,
		func(ctx context.Context) (err error) {
			teacherRows, err = s.teachers.StatsByStatus(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			studentRows, err = s.students.StatsByStatus(ctx)
			return err
		},
	)
	if err != nil {
		s.logger.Error("dashboard summary", zap.Error(err))
		return nil, storeFailure(err, "failed to fetch dashboard summary")
	}

	teachers := BucketsFromRows(teacherRows)
	students := BucketsFromRows(studentRows)
	return &dto.Summary{
		Teachers: dto.EntitySummary{
			Total:    teachers.Total,
			ByStatus: DenseFill(teachers.Buckets, teacherStatusKeys()...),
		},
		Students: dto.EntitySummary{
			Total:    students.Total,
			ByStatus: DenseFill(students.Buckets, studentStatusKeys()...),
		},
	}, nil
}
