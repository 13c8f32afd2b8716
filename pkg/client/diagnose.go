package client

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
)

// Connectivity classifies what Diagnose found.
type Connectivity int

const (
	Connected Connectivity = iota
	ServerUnreachable
	StoreUnavailable
)

// Diagnosis is the result of probing the health endpoint.
type Diagnosis struct {
	Connectivity Connectivity
	Message      string
	Health       *dto.Health
}

// Connected reports whether both the server and its database answered.
func (d Diagnosis) Connected() bool {
	return d.Connectivity == Connected
}

// Diagnose tells a server that cannot be reached from one whose data store is
// failing.
func (c *Client) Diagnose(ctx context.Context) Diagnosis {
	health, err := c.Health(ctx)
	switch {
	case err == nil:
		return Diagnosis{Connectivity: Connected, Message: "Connected successfully", Health: health}
	case errors.Is(err, ErrServerUnreachable):
		return Diagnosis{Connectivity: ServerUnreachable, Message: ErrServerUnreachable.Error()}
	default:
		var apiErr *APIError
		msg := err.Error()
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		return Diagnosis{Connectivity: StoreUnavailable, Message: msg, Health: health}
	}
}

// Overview is the first screen of the teacher dashboard.
type Overview struct {
	Active  *dto.TeachersActive
	Stats   *dto.TeacherStats
	Preview *dto.TeacherList
}

// PreviewSize is how many teachers Overview lists.
const PreviewSize = 5

// TeacherOverview fetches the count, the breakdown and a short list at once.
func (c *Client) TeacherOverview(ctx context.Context) (*Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Active, err = c.TeachersActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Stats, err = c.TeacherStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Preview, err = c.TeachersActiveList(gctx, 1, PreviewSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
