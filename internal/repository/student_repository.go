package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

var (
	studentSummaryColumns = []string{"nis", "name", "class", "gender", "birth_date", "parent_name", "phone", "status", "enrollment_year"}
	studentDetailColumns  = []string{
		"nis", "name", "class", "gender", "birth_date", "birth_place", "address",
		"parent_name", "parent_occupation", "phone", "email", "religion", "status",
		"enrollment_year", "created_at", "updated_at",
	}
)

// StudentRepository reads student records.
type StudentRepository struct {
	store *Store
	sb    squirrel.StatementBuilderType
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(store *Store) *StudentRepository {
	return &StudentRepository{store: store, sb: newBuilder()}
}

// CountActive returns the number of active students.
func (r *StudentRepository) CountActive(ctx context.Context) (int, error) {
	var total int
	err := r.store.Get(ctx, "students_count_active", &total,
		`SELECT COUNT(*) FROM students WHERE status = $1`, models.StudentStatusActive)
	return total, err
}

// StatsByStatus groups every student by status.
func (r *StudentRepository) StatsByStatus(ctx context.Context) ([]models.CountRow, error) {
	var rows []models.CountRow
	err := r.store.Select(ctx, "students_stats_status", &rows,
		`SELECT status AS key, COUNT(*) AS count FROM students GROUP BY status ORDER BY status`)
	return rows, err
}

// StatsByClass groups active students by class.
func (r *StudentRepository) StatsByClass(ctx context.Context) ([]models.CountRow, error) {
	var rows []models.CountRow
	err := r.store.Select(ctx, "students_stats_class", &rows,
		`SELECT COALESCE(class, '') AS key, COUNT(*) AS count FROM students WHERE status = $1 GROUP BY class ORDER BY class`,
		models.StudentStatusActive)
	return rows, err
}

// StatsByGender groups active students by gender code.
func (r *StudentRepository) StatsByGender(ctx context.Context) ([]models.CountRow, error) {
	var rows []models.CountRow
	err := r.store.Select(ctx, "students_stats_gender", &rows,
		`SELECT COALESCE(gender, '') AS key, COUNT(*) AS count FROM students WHERE status = $1 GROUP BY gender ORDER BY gender`,
		models.StudentStatusActive)
	return rows, err
}

// List returns one page of students in filter.Status, optionally narrowed to a class.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentSummary, int, error) {
	pred := squirrel.And{squirrel.Eq{"status": filter.Status}}
	if filter.Class != "" {
		pred = append(pred, squirrel.Eq{"class": filter.Class})
	}

	students := []models.StudentSummary{}
	total, err := r.store.page(ctx, "students_list", &students, r.sb, "students", studentSummaryColumns, pred, filter.Page)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// Search matches name, NIS, or parent name case-insensitively within one status.
func (r *StudentRepository) Search(ctx context.Context, search models.StudentSearch) ([]models.StudentSummary, error) {
	pattern := likePattern(search.Query)
	query, args, err := r.sb.Select(studentSummaryColumns...).
		From("students").
		Where(squirrel.Eq{"status": search.Status}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"nis": pattern},
			squirrel.ILike{"parent_name": pattern},
		}).
		OrderBy("name ASC").
		Limit(SearchLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student search query: %w", err)
	}

	students := []models.StudentSummary{}
	if err := r.store.Select(ctx, "students_search", &students, query, args...); err != nil {
		return nil, err
	}
	return students, nil
}

// FindByNIS fetches the full student record.
func (r *StudentRepository) FindByNIS(ctx context.Context, nis string) (*models.Student, error) {
	query, args, err := r.sb.Select(studentDetailColumns...).
		From("students").
		Where(squirrel.Eq{"nis": nis}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student detail query: %w", err)
	}

	var student models.Student
	if err := r.store.Get(ctx, "students_find_nis", &student, query, args...); err != nil {
		return nil, err
	}
	return &student, nil
}

// StatsByEnrollmentYear groups students by enrollment year, status and gender
// in a single query, newest year first.
func (r *StudentRepository) StatsByEnrollmentYear(ctx context.Context) ([]models.EnrollmentRow, error) {
	const query = `SELECT enrollment_year, status, COALESCE(gender, '') AS gender, COUNT(*) AS count
		FROM students
		WHERE enrollment_year IS NOT NULL
		GROUP BY enrollment_year, status, gender
		ORDER BY enrollment_year DESC`
	var rows []models.EnrollmentRow
	err := r.store.Select(ctx, "students_stats_year", &rows, query)
	return rows, err
}
