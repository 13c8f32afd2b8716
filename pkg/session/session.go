// Package session persists the signed-in user of the terminal client and
// exposes it through an explicit Context with a start-up and teardown
// lifecycle.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNoSession is returned by a Store when nothing is persisted.
	ErrNoSession = errors.New("session: no session stored")
	// ErrMalformed marks a persisted record that cannot be decoded.
	ErrMalformed = errors.New("session: malformed record")
)

// Record is the persisted session. It carries no expiry.
type Record struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	LoginTime   time.Time `json:"login_time"`
	AccessToken string    `json:"access_token,omitempty"`
}

// Store holds the raw bytes of a single record under a fixed key.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// Encode serialises a record for storage.
func Encode(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

// Decode parses a stored record. A record without a role is as unusable as
// one that is not JSON at all.
func Decode(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.TrimSpace(rec.Role) == "" {
		return nil, fmt.Errorf("%w: missing role", ErrMalformed)
	}
	return &rec, nil
}

// Context owns the current session for the lifetime of the client.
type Context struct {
	store  Store
	logger *zap.Logger

	mu      sync.RWMutex
	current *Record
}

// NewContext builds a Context over store. Call Init before use.
func NewContext(store Store, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{store: store, logger: logger}
}

// Init loads the persisted record. A malformed record is cleared from the
// store and treated as absent.
func (c *Context) Init(ctx context.Context) error {
	data, err := c.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		c.set(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	rec, err := Decode(data)
	if err != nil {
		c.logger.Warn("discarding unreadable session", zap.Error(err))
		c.set(nil)
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clear malformed session: %w", clearErr)
		}
		return nil
	}

	c.set(rec)
	return nil
}

// Current returns a copy of the active record, nil when signed out.
func (c *Context) Current() *Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	rec := *c.current
	return &rec
}

// Begin persists rec after a successful login and makes it current.
func (c *Context) Begin(ctx context.Context, rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := c.store.Save(ctx, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.set(&rec)
	return nil
}

// End removes the session from the store and from memory.
func (c *Context) End(ctx context.Context) error {
	c.set(nil)
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (c *Context) set(rec *Record) {
	c.mu.Lock()
	c.current = rec
	c.mu.Unlock()
}
