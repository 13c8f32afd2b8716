package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// Health returns the report even when the server answers with a failure,
// together with the error.
func (c *Client) Health(ctx context.Context) (*dto.Health, error) {
	var out dto.Health
	_, err := c.get(ctx, "/health", nil, &out)
	if err != nil && out.DatabaseStatus == "" {
		return nil, err
	}
	return &out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, models.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*models.UserInfo, error) {
	var out struct {
		User models.UserInfo `json:"user"`
	}
	if _, err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) TeachersActive(ctx context.Context) (*dto.TeachersActive, error) {
	var out dto.TeachersActive
	if _, err := c.get(ctx, "/dashboard/teachers-active", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TeacherStats(ctx context.Context) (*dto.TeacherStats, error) {
	var out dto.TeacherStats
	if _, err := c.get(ctx, "/dashboard/teachers-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TeachersActiveList(ctx context.Context, page, limit int) (*dto.TeacherList, error) {
	var out dto.TeacherList
	if _, err := c.get(ctx, "/dashboard/teachers-active-list", pageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchTeachers searches by name or email. An empty status means active.
func (c *Client) SearchTeachers(ctx context.Context, query, status string) (*dto.TeacherSearchResult, error) {
	q := url.Values{"q": {query}}
	if status != "" {
		q.Set("status", status)
	}
	var out dto.TeacherSearchResult
	if _, err := c.get(ctx, "/dashboard/teachers-search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TeachersByMonth fetches the monthly series. year 0 lets the server pick the
// current year.
func (c *Client) TeachersByMonth(ctx context.Context, year int) (*dto.TeachersByMonth, error) {
	q := url.Values{}
	if year != 0 {
		q.Set("year", strconv.Itoa(year))
	}
	var out dto.TeachersByMonth
	if _, err := c.get(ctx, "/dashboard/teachers-by-month", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TeacherDetail(ctx context.Context, id int64) (*models.Teacher, error) {
	var out dto.TeacherDetail
	if _, err := c.get(ctx, "/dashboard/teacher-detail/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out.Teacher, nil
}

func (c *Client) StudentsActive(ctx context.Context) (*dto.StudentsActive, error) {
	var out dto.StudentsActive
	if _, err := c.get(ctx, "/dashboard/students-active", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StudentStats(ctx context.Context) (*dto.StudentStats, error) {
	var out dto.StudentStats
	if _, err := c.get(ctx, "/dashboard/students-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StudentsActiveList pages active students, optionally within one class.
func (c *Client) StudentsActiveList(ctx context.Context, page, limit int, class string) (*dto.StudentList, error) {
	q := pageQuery(page, limit)
	if class != "" {
		q.Set("class", class)
	}
	var out dto.StudentList
	if _, err := c.get(ctx, "/dashboard/students-active-list", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StudentsByStatus(ctx context.Context, status string, page, limit int) (*dto.StudentList, error) {
	q := pageQuery(page, limit)
	if status != "" {
		q.Set("status", status)
	}
	var out dto.StudentList
	if _, err := c.get(ctx, "/dashboard/students-by-status", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchStudents(ctx context.Context, query, status string) (*dto.StudentSearchResult, error) {
	q := url.Values{"q": {query}}
	if status != "" {
		q.Set("status", status)
	}
	var out dto.StudentSearchResult
	if _, err := c.get(ctx, "/dashboard/students-search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StudentDetail(ctx context.Context, nis string) (*models.Student, error) {
	var out dto.StudentDetail
	if _, err := c.get(ctx, "/dashboard/student-detail/"+url.PathEscape(nis), nil, &out); err != nil {
		return nil, err
	}
	return &out.Student, nil
}

func (c *Client) StudentsByYear(ctx context.Context) (*dto.StudentsByYear, error) {
	var out dto.StudentsByYear
	if _, err := c.get(ctx, "/dashboard/students-by-year", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Summary(ctx context.Context) (*dto.Summary, error) {
	var out dto.Summary
	if _, err := c.get(ctx, "/dashboard/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
