package service

import (
	"strings"
	"unicode/utf8"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

// MinQueryLength is the shortest accepted search query after trimming.
const MinQueryLength = 2

// NormalizeQuery trims q and rejects queries that are too short.
func NormalizeQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return "", appErrors.Clone(appErrors.ErrInvalidArgument, "search query must be at least 2 characters")
	}
	return q, nil
}

// ParseTeacherStatus defaults to active and requires the exact lowercase form.
func ParseTeacherStatus(raw string) (models.TeacherStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.TeacherStatusActive, nil
	}
	status := models.TeacherStatus(raw)
	if !status.Valid() {
		return "", appErrors.Clone(appErrors.ErrInvalidArgument, "unknown teacher status: "+raw)
	}
	return status, nil
}

// ParseStudentStatus defaults to Active and requires the exact capitalized form.
func ParseStudentStatus(raw string) (models.StudentStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.StudentStatusActive, nil
	}
	status := models.StudentStatus(raw)
	if !status.Valid() {
		return "", appErrors.Clone(appErrors.ErrInvalidArgument, "unknown student status: "+raw)
	}
	return status, nil
}
