package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// SearchLimit caps every search result set.
const SearchLimit = 20

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// likePattern wraps q for a substring match, escaping LIKE metacharacters.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// page runs the data query and the count query for one predicate concurrently.
func (s *Store) page(ctx context.Context, label string, dest interface{}, sb squirrel.StatementBuilderType, table string, columns []string, pred squirrel.Sqlizer, req models.PageRequest) (int, error) {
	dataSQL, dataArgs, err := sb.Select(columns...).
		From(table).
		Where(pred).
		OrderBy("name ASC").
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset())).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s query: %w", label, err)
	}

	countSQL, countArgs, err := sb.Select("COUNT(*)").From(table).Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count query: %w", label, err)
	}

	var total int
	err = Parallel(ctx,
		func(ctx context.Context) error {
			return s.Select(ctx, label, dest, dataSQL, dataArgs...)
		},
		func(ctx context.Context) error {
			return s.Get(ctx, label+"_count", &total, countSQL, countArgs...)
		},
	)
	if err != nil {
		return 0, err
	}
	return total, nil
}
