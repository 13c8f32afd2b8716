package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/access"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/pkg/session"
)

func loginCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and remember the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true, EnvVars: []string{"DASHBOARD_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			res, err := a.api.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			rec := session.Record{
				Name:        res.User.Name,
				Email:       res.User.Email,
				Role:        string(res.User.Role),
				LoginTime:   res.LoginTime,
				AccessToken: res.AccessToken,
			}
			if err := a.session.Begin(c.Context, rec); err != nil {
				return err
			}
			a.logger.Info("signed in", zap.String("email", rec.Email), zap.String("role", rec.Role))
			a.printf("Signed in as %s (%s), opening %s\n", rec.Name, rec.Role, access.CanonicalRoute(rec.Role))
			return nil
		},
	}
}

func logoutCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: func(c *cli.Context) error {
			if err := a.session.End(c.Context); err != nil {
				return err
			}
			a.printf("Signed out\n")
			return nil
		},
	}
}

func whoamiCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the stored session",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verify", Usage: "confirm the token with the server"},
		},
		Action: func(c *cli.Context) error {
			rec := a.session.Current()
			if rec == nil {
				a.printf("Not signed in\n")
				return nil
			}
			if c.Bool("verify") {
				user, err := a.api.Me(c.Context)
				if err != nil {
					return err
				}
				return a.print(user)
			}
			a.printf("%s <%s> role=%s since %s\n", rec.Name, rec.Email, rec.Role, rec.LoginTime.Format(time.RFC3339))
			return nil
		},
	}
}

// openCommand walks the route gate exactly as navigation in the browser front
// end would, then renders the dashboard the route stands for.
func openCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "navigate to a dashboard route",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			decision := a.gate.Navigate(path)
			for hops := 0; !decision.Render() && decision.Redirect != access.LoginPath && hops < 3; hops++ {
				a.printf("%s -> %s\n", decision.State, decision.Redirect)
				path = decision.Redirect
				decision = a.gate.Navigate(path)
			}
			if !decision.Render() {
				a.printf("%s -> %s (run `login` first)\n", decision.State, decision.Redirect)
				return nil
			}
			if path == access.LoginPath {
				a.printf("Not signed in\n")
				return nil
			}
			return a.renderDashboard(c, path)
		},
	}
}

func (a *app) renderDashboard(c *cli.Context, path string) error {
	a.printf("Dashboard %s\n", path)
	if path != access.CanonicalRoute(string(models.RoleSuperuser)) {
		summary, err := a.api.Summary(c.Context)
		if err != nil {
			return err
		}
		return a.print(summary)
	}

	overview, err := a.api.TeacherOverview(c.Context)
	if err != nil {
		return err
	}
	return a.print(overview)
}

func healthCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "check the server and its database",
		Action: func(c *cli.Context) error {
			d := a.api.Diagnose(c.Context)
			a.printf("%s\n", d.Message)
			if d.Health != nil {
				if err := a.print(d.Health); err != nil {
					return err
				}
			}
			if !d.Connected() {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func summaryCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "teacher and student totals",
		Action: func(c *cli.Context) error {
			res, err := a.api.Summary(c.Context)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
}

func pageFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.IntFlag{Name: "page", Value: 1},
		&cli.IntFlag{Name: "limit", Value: 10},
	}, extra...)
}

func teachersCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "teachers",
		Usage: "teacher dashboards",
		Subcommands: []*cli.Command{
			{Name: "active", Action: func(c *cli.Context) error {
				res, err := a.api.TeachersActive(c.Context)
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "stats", Action: func(c *cli.Context) error {
				res, err := a.api.TeacherStats(c.Context)
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "list", Flags: pageFlags(), Action: func(c *cli.Context) error {
				res, err := a.api.TeachersActiveList(c.Context, c.Int("page"), c.Int("limit"))
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "search", ArgsUsage: "<query>", Flags: []cli.Flag{&cli.StringFlag{Name: "status"}}, Action: func(c *cli.Context) error {
				res, err := a.api.SearchTeachers(c.Context, c.Args().First(), c.String("status"))
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "by-month", Flags: []cli.Flag{&cli.IntFlag{Name: "year"}}, Action: func(c *cli.Context) error {
				res, err := a.api.TeachersByMonth(c.Context, c.Int("year"))
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "detail", ArgsUsage: "<id>", Action: func(c *cli.Context) error {
				id, err := strconv.ParseInt(c.Args().First(), 10, 64)
				if err != nil {
					return errors.New("teacher id must be a number")
				}
				res, err := a.api.TeacherDetail(c.Context, id)
				if err != nil {
					return err
				}
				return a.print(res)
			}},
		},
	}
}

func studentsCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "students",
		Usage: "student dashboards",
		Subcommands: []*cli.Command{
			{Name: "active", Action: func(c *cli.Context) error {
				res, err := a.api.StudentsActive(c.Context)
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "stats", Action: func(c *cli.Context) error {
				res, err := a.api.StudentStats(c.Context)
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "list", Flags: pageFlags(&cli.StringFlag{Name: "class"}), Action: func(c *cli.Context) error {
				res, err := a.api.StudentsActiveList(c.Context, c.Int("page"), c.Int("limit"), c.String("class"))
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "by-status", Flags: pageFlags(&cli.StringFlag{Name: "status"}), Action: func(c *cli.Context) error {
				res, err := a.api.StudentsByStatus(c.Context, c.String("status"), c.Int("page"), c.Int("limit"))
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "search", ArgsUsage: "<query>", Flags: []cli.Flag{&cli.StringFlag{Name: "status"}}, Action: func(c *cli.Context) error {
				res, err := a.api.SearchStudents(c.Context, c.Args().First(), c.String("status"))
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "detail", ArgsUsage: "<nis>", Action: func(c *cli.Context) error {
				res, err := a.api.StudentDetail(c.Context, c.Args().First())
				if err != nil {
					return err
				}
				return a.print(res)
			}},
			{Name: "by-year", Action: func(c *cli.Context) error {
				res, err := a.api.StudentsByYear(c.Context)
				if err != nil {
					return err
				}
				return a.print(res)
			}},
		},
	}
}
