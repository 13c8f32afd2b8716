package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/access"
	"github.com/noah-isme/school-dashboard-api/pkg/client"
	"github.com/noah-isme/school-dashboard-api/pkg/config"
	"github.com/noah-isme/school-dashboard-api/pkg/logger"
	"github.com/noah-isme/school-dashboard-api/pkg/session"
)

// app holds what every command needs. It is built in setup and released in
// teardown.
type app struct {
	cfg *config.Config
	out io.Writer

	logger  *zap.Logger
	redis   *redis.Client
	session *session.Context
	gate    *access.Gate
	api     *client.Client
}

func (a *app) setup(c *cli.Context) error {
	logr, err := logger.New(a.cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logr

	store, err := a.sessionStore(c)
	if err != nil {
		return err
	}
	a.session = session.NewContext(store, logr)
	if err := a.session.Init(c.Context); err != nil {
		return err
	}

	a.gate = access.NewGate(a.session)
	a.api = client.New(c.String("api"),
		client.WithTimeout(a.cfg.Client.RequestTimeout),
		client.WithSession(a.session),
	)
	return nil
}

func (a *app) sessionStore(c *cli.Context) (session.Store, error) {
	if a.cfg.Client.SessionBackend == config.SessionBackendRedis {
		rdb, err := session.NewRedisClient(c.Context, a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect session redis: %w", err)
		}
		a.redis = rdb
		return session.NewRedisStore(rdb, a.cfg.Client.SessionKey), nil
	}
	return session.NewFileStore(a.cfg.Client.SessionDir, a.cfg.Client.SessionKey), nil
}

func (a *app) teardown(*cli.Context) error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
