package main

import (
	"bufio"
	"context"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/service"
	"github.com/noah-isme/school-dashboard-api/pkg/client"
)

// watchCommand reads queries line by line and searches once typing settles.
func watchCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "watch-search",
		Usage: "type queries on stdin, results follow after a short pause",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "entity", Value: "teachers", Usage: "teachers or students"},
			&cli.StringFlag{Name: "status"},
		},
		Action: func(c *cli.Context) error {
			entity := c.String("entity")
			status := c.String("status")
			debounce := client.NewDebouncer(a.cfg.Client.SearchDebounce)

			scanner := bufio.NewScanner(c.App.Reader)
			for scanner.Scan() {
				query := strings.TrimSpace(scanner.Text())
				if _, err := service.NormalizeQuery(query); err != nil {
					debounce.Cancel()
					continue
				}
				debounce.Trigger(func() { a.search(c.Context, entity, query, status) })
			}
			if err := scanner.Err(); err != nil {
				debounce.Cancel()
				return err
			}
			debounce.Flush()
			return nil
		},
	}
}

func (a *app) search(ctx context.Context, entity, query, status string) {
	var (
		res interface{}
		err error
	)
	if entity == "students" {
		res, err = a.api.SearchStudents(ctx, query, status)
	} else {
		res, err = a.api.SearchTeachers(ctx, query, status)
	}
	if err != nil {
		a.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return
	}
	_ = a.print(res)
}
