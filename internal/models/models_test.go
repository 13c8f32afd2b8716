package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationScenarios(t *testing.T) {
	cases := []struct {
		name string
		page int
		want Pagination
	}{
		{"first page", 1, Pagination{CurrentPage: 1, TotalPages: 3, TotalData: 25, PerPage: 10, HasNext: true, HasPrev: false}},
		{"last page", 3, Pagination{CurrentPage: 3, TotalPages: 3, TotalData: 25, PerPage: 10, HasNext: false, HasPrev: true}},
		{"beyond last page", 10, Pagination{CurrentPage: 10, TotalPages: 3, TotalData: 25, PerPage: 10, HasNext: false, HasPrev: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewPagination(PageRequest{Page: tc.page, Limit: 10}, 25))
		})
	}
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(PageRequest{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, PageRequest{Page: 3, Limit: 10}.Offset())
}

func TestStatusCasing(t *testing.T) {
	assert.True(t, TeacherStatus("active").Valid())
	assert.False(t, TeacherStatus("Active").Valid())
	assert.True(t, StudentStatus("Active").Valid())
	assert.False(t, StudentStatus("active").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleGuru.Valid())
	assert.False(t, UserRole("admin").Valid())
}
