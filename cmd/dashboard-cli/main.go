package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/noah-isme/school-dashboard-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI(&app{cfg: cfg, out: os.Stdout}).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newCLI(a *app) *cli.App {
	return &cli.App{
		Name:  "dashboard-cli",
		Usage: "terminal front end for the school dashboard API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "API base URL",
				Value:   a.cfg.Client.APIBaseURL,
				EnvVars: []string{"API_BASE_URL"},
			},
		},
		Before: a.setup,
		After:  a.teardown,
		Commands: []*cli.Command{
			loginCommand(a),
			logoutCommand(a),
			whoamiCommand(a),
			openCommand(a),
			healthCommand(a),
			summaryCommand(a),
			teachersCommand(a),
			studentsCommand(a),
			watchCommand(a),
		},
	}
}
