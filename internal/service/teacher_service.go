package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

type teacherRepository interface {
	CountActive(ctx context.Context) (int, error)
	StatsByStatus(ctx context.Context) ([]models.CountRow, error)
	ListActive(ctx context.Context, req models.PageRequest) ([]models.Teacher, int, error)
	Search(ctx context.Context, search models.TeacherSearch) ([]models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	CountByMonth(ctx context.Context, year int) ([]models.MonthRow, error)
}

// TeacherService implements the teacher dashboard queries.
type TeacherService struct {
	repo   teacherRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, logger: logger, now: time.Now}
}

// CountActive returns the active teacher count.
func (s *TeacherService) CountActive(ctx context.Context) (*dto.TeachersActive, error) {
	total, err := s.repo.CountActive(ctx)
	if err != nil {
		s.logger.Error("count active teachers", zap.Error(err))
		return nil, storeFailure(err, "failed to fetch active teachers")
	}
	return &dto.TeachersActive{TotalTeachersActive: total}, nil
}

// Stats returns every teacher grouped by status.
func (s *TeacherService) Stats(ctx context.Context) (*dto.TeacherStats, error) {
	rows, err := s.repo.StatsByStatus(ctx)
	if err != nil {
		s.logger.Error("teacher stats by status", zap.Error(err))
		return nil, storeFailure(err, "failed to fetch teacher statistics")
	}
	breakdown := BucketsFromRows(rows)
	return &dto.TeacherStats{
		StatsByStatus: breakdown.Buckets,
		TotalAll:      breakdown.Total,
		Detail:        breakdown.Rows,
	}, nil
}

// ListActive returns one page of active teachers ordered by name.
func (s *TeacherService) ListActive(ctx context.Context, req models.PageRequest) (*dto.TeacherList, error) {
	teachers, total, err := s.repo.ListActive(ctx, req)
	if err != nil {
		s.logger.Error("list active teachers", zap.Int("page", req.Page), zap.Int("limit", req.Limit), zap.Error(err))
		return nil, storeFailure(err, "failed to fetch active teacher list")
	}
	return &dto.TeacherList{Teachers: teachers, Pagination: models.NewPagination(req, total)}, nil
}

// Search finds up to SearchLimit teachers by name or email. The query length
// is checked before the status filter.
func (s *TeacherService) Search(ctx context.Context, rawQuery, rawStatus string) (*dto.TeacherSearchResult, error) {
	query, err := NormalizeQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	status, err := ParseTeacherStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	teachers, err := s.repo.Search(ctx, models.TeacherSearch{Query: query, Status: status})
	if err != nil {
		s.logger.Error("search teachers", zap.String("query", query), zap.Error(err))
		return nil, storeFailure(err, "failed to search teachers")
	}
	return &dto.TeacherSearchResult{Teachers: teachers, TotalFound: len(teachers), Query: query}, nil
}

// ByMonth returns the twelve-month series of active teachers created in the
// given year, defaulting to the current one.
func (s *TeacherService) ByMonth(ctx context.Context, rawYear string) (*dto.TeachersByMonth, error) {
	year := s.now().Year()
	if raw := strings.TrimSpace(rawYear); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "year must be a positive integer")
		}
		year = parsed
	}

	rows, err := s.repo.CountByMonth(ctx, year)
	if err != nil {
		s.logger.Error("teachers by month", zap.Int("year", year), zap.Error(err))
		return nil, storeFailure(err, "failed to fetch teachers per month")
	}
	months, total := DenseMonths(rows)
	return &dto.TeachersByMonth{Year: year, Months: months, Total: total}, nil
}

// Detail returns one teacher by numeric ID.
func (s *TeacherService) Detail(ctx context.Context, rawID string) (*dto.TeacherDetail, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id < 1 {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "teacher id must be a positive integer")
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		s.logger.Error("find teacher", zap.Int64("id", id), zap.Error(err))
		return nil, storeFailure(err, "failed to fetch teacher detail")
	}
	return &dto.TeacherDetail{Teacher: *teacher}, nil
}
