package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var pageValidator = validator.New()

type pageParams struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1,max=100"`
}

// ParsePageRequest turns raw page and limit query values into a validated
// request. Blank values take the defaults; anything out of range is rejected
// rather than clamped.
func ParsePageRequest(rawPage, rawLimit string) (models.PageRequest, error) {
	page, err := parseIntParam("page", rawPage, DefaultPage)
	if err != nil {
		return models.PageRequest{}, err
	}
	limit, err := parseIntParam("limit", rawLimit, DefaultLimit)
	if err != nil {
		return models.PageRequest{}, err
	}

	params := pageParams{Page: page, Limit: limit}
	if err := pageValidator.Struct(params); err != nil {
		return models.PageRequest{}, appErrors.WrapAs(appErrors.ErrInvalidArgument, err,
			"page must be at least 1 and limit between 1 and 100")
	}
	// (page-1)*limit becomes the SQL offset and must not wrap.
	if page-1 > math.MaxInt/limit {
		return models.PageRequest{}, appErrors.Clone(appErrors.ErrInvalidArgument, "page is too large")
	}
	return models.PageRequest{Page: page, Limit: limit}, nil
}

func parseIntParam(name, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.WrapAs(appErrors.ErrInvalidArgument, err, name+" must be an integer")
	}
	return v, nil
}
