package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

var teacherColumns = []string{"id", "name", "email", "phone", "education", "gender", "status", "created_at"}

// TeacherRepository reads teacher records.
type TeacherRepository struct {
	store *Store
	sb    squirrel.StatementBuilderType
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(store *Store) *TeacherRepository {
	return &TeacherRepository{store: store, sb: newBuilder()}
}

// CountActive returns the number of active teachers.
func (r *TeacherRepository) CountActive(ctx context.Context) (int, error) {
	var total int
	err := r.store.Get(ctx, "teachers_count_active", &total,
		`SELECT COUNT(*) FROM teachers WHERE status = $1`, models.TeacherStatusActive)
	return total, err
}

// StatsByStatus groups every teacher by status.
func (r *TeacherRepository) StatsByStatus(ctx context.Context) ([]models.CountRow, error) {
	var rows []models.CountRow
	err := r.store.Select(ctx, "teachers_stats_status", &rows,
		`SELECT status AS key, COUNT(*) AS count FROM teachers GROUP BY status ORDER BY status`)
	return rows, err
}

// ListActive returns one page of active teachers with the matching total.
func (r *TeacherRepository) ListActive(ctx context.Context, req models.PageRequest) ([]models.Teacher, int, error) {
	teachers := []models.Teacher{}
	total, err := r.store.page(ctx, "teachers_list_active", &teachers, r.sb, "teachers", teacherColumns,
		squirrel.Eq{"status": models.TeacherStatusActive}, req)
	if err != nil {
		return nil, 0, err
	}
	return teachers, total, nil
}

// Search matches name or email case-insensitively within one status.
func (r *TeacherRepository) Search(ctx context.Context, search models.TeacherSearch) ([]models.Teacher, error) {
	pattern := likePattern(search.Query)
	query, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		Where(squirrel.Eq{"status": search.Status}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		}).
		OrderBy("name ASC").
		Limit(SearchLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build teacher search query: %w", err)
	}

	teachers := []models.Teacher{}
	if err := r.store.Select(ctx, "teachers_search", &teachers, query, args...); err != nil {
		return nil, err
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build teacher detail query: %w", err)
	}

	var teacher models.Teacher
	if err := r.store.Get(ctx, "teachers_find_id", &teacher, query, args...); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// CountByMonth groups active teachers created in year by creation month.
func (r *TeacherRepository) CountByMonth(ctx context.Context, year int) ([]models.MonthRow, error) {
	const query = `SELECT EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count
		FROM teachers
		WHERE EXTRACT(YEAR FROM created_at) = $1 AND status = $2
		GROUP BY 1
		ORDER BY 1`
	var rows []models.MonthRow
	err := r.store.Select(ctx, "teachers_count_month", &rows, query, year, models.TeacherStatusActive)
	return rows, err
}
