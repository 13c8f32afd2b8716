package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/repository"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

type studentRepository interface {
	CountActive(ctx context.Context) (int, error)
	StatsByStatus(ctx context.Context) ([]models.CountRow, error)
	StatsByClass(ctx context.Context) ([]models.CountRow, error)
	StatsByGender(ctx context.Context) ([]models.CountRow, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentSummary, int, error)
	Search(ctx context.Context, search models.StudentSearch) ([]models.StudentSummary, error)
	FindByNIS(ctx context.Context, nis string) (*models.Student, error)
	StatsByEnrollmentYear(ctx context.Context) ([]models.EnrollmentRow, error)
}

// StudentService implements the student dashboard queries.
type StudentService struct {
	repo   studentRepository
	logger *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, logger: logger}
}

// CountActive returns the active student count.
func (s *StudentService) CountActive(ctx context.Context) (*dto.StudentsActive, error) {
	total, err := s.repo.CountActive(ctx)
	if err != nil {
		s.logger.Error("count active students", zap.Error(err))
		return nil, storeFailure(err, "failed to fetch active students")
	}
	return &dto.StudentsActive{TotalStudentsActive: total}, nil
}

// Stats runs the status, class and gender breakdowns concurrently. Class and
// gender only cover active students; the total is the sum of the status
// breakdown.
func (s *StudentService) Stats(ctx context.Context) (*dto.StudentStats, error) {
	var byStatus, byClass, byGender []models.CountRow
	err := repository.Parallel(ctx,
		func(ctx context.Context) (err error) {
			byStatus, err = s.repo.StatsByStatus(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			byClass, err = s.repo.StatsByClass(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			byGender, err = s.repo.StatsByGender(ctx)
			return err
		},
	)
	if err != nil {
		s.logger.Error("student stats", zap.Error(err))
		return nil, storeFailure(err, "failed to fetch student statistics")
	}

	status := BucketsFromRows(byStatus)
	return &dto.StudentStats{
		TotalAll:      status.Total,
		StatsByStatus: status.Buckets,
		StatsByClass:  BucketsFromRows(byClass).Buckets,
		StatsByGender: DenseFill(BucketsFromRows(byGender).Buckets, models.StudentGenders()...),
	}, nil
}

// ListActive returns one page of active students, optionally within a class.
func (s *StudentService) ListActive(ctx context.Context, req models.PageRequest, class string) (*dto.StudentList, error) {
	return s.list(ctx, models.StudentFilter{
		Status: models.StudentStatusActive,
		Class:  strings.TrimSpace(class),
		Page:   req,
	})
}

// ListByStatus returns one page of students in the given status, Active when
// omitted.
func (s *StudentService) ListByStatus(ctx context.Context, rawStatus string, req models.PageRequest) (*dto.StudentList, error) {
	status, err := ParseStudentStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, models.StudentFilter{Status: status, Page: req})
}

func (s *StudentService) list(ctx context.Context, filter models.StudentFilter) (*dto.StudentList, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list students",
			zap.String("status", string(filter.Status)),
			zap.String("class", filter.Class),
			zap.Error(err),
		)
		return nil, storeFailure(err, "failed to fetch student list")
	}
	return &dto.StudentList{
		Students:   students,
		Pagination: models.NewPagination(filter.Page, total),
		Filter:     dto.StudentListFilter{Status: filter.Status, Class: filter.Class},
	}, nil
}

// Search finds up to SearchLimit students by name, NIS or parent name.
func (s *StudentService) Search(ctx context.Context, rawQuery, rawStatus string) (*dto.StudentSearchResult, error) {
	query, err := NormalizeQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	status, err := ParseStudentStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Search(ctx, models.StudentSearch{Query: query, Status: status})
	if err != nil {
		s.logger.Error("search students", zap.String("query", query), zap.Error(err))
		return nil, storeFailure(err, "failed to search students")
	}
	return &dto.StudentSearchResult{Students: students, TotalFound: len(students), Query: query}, nil
}

// Detail returns the full record for a NIS.
func (s *StudentService) Detail(ctx context.Context, nis string) (*dto.StudentDetail, error) {
	nis = strings.TrimSpace(nis)
	if nis == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "nis is required")
	}

	student, err := s.repo.FindByNIS(ctx, nis)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("find student", zap.String("nis", nis), zap.Error(err))
		return nil, storeFailure(err, "failed to fetch student detail")
	}
	return &dto.StudentDetail{Student: *student}, nil
}

// ByEnrollmentYear returns the per-year status and gender cross tabulation.
func (s *StudentService) ByEnrollmentYear(ctx context.Context) (*dto.StudentsByYear, error) {
	rows, err := s.repo.StatsByEnrollmentYear(ctx)
	if err != nil {
		s.logger.Error("students by enrollment year", zap.Error(err))
		return nil, storeFailure(err, "failed to fetch students per year")
	}
	return &dto.StudentsByYear{StatsByYear: CrossTabEnrollment(rows)}, nil
}
