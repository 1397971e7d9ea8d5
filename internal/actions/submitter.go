// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/metrics"
	"github.com/tomtom215/alignak-watch/internal/models"
)

// Backend action request endpoints.
const (
	endpointAcknowledge = "actionacknowledge"
	endpointDowntime    = "actiondowntime"
	endpointForceCheck  = "actionforcecheck"
)

// defaultDowntime is used when a downtime request gives neither an end time
// nor a duration.
const defaultDowntime = 24 * time.Hour

var (
	// ErrNoUser is returned when the user snapshot has not been polled yet.
	ErrNoUser = errors.New("current user unknown")

	// ErrNoHandle is returned when the backend accepted an action request
	// without returning its href.
	ErrNoHandle = errors.New("backend returned no action handle")
)

// Poster creates backend documents.
type Poster interface {
	Post(ctx context.Context, endpoint string, payload map[string]interface{}) (*backend.Response, error)
}

// Snapshot resolves the current user and display names.
type Snapshot interface {
	User() (models.Item, bool)
	Get(rt models.ResourceType, id string) (models.Item, bool)
}

// AckRequest asks the backend to acknowledge a host or service problem.
type AckRequest struct {
	HostID     string `json:"host_id" validate:"required,alignak_id"`
	ServiceID  string `json:"service_id,omitempty" validate:"omitempty,alignak_id"`
	Comment    string `json:"comment" validate:"required,max=1024"`
	Sticky     bool   `json:"sticky"`
	Notify     bool   `json:"notify"`
	Persistent bool   `json:"persistent"`
}

// DowntimeRequest schedules a downtime. Times are Unix seconds; a zero
// start means now, a zero end means start plus duration.
type DowntimeRequest struct {
	HostID    string `json:"host_id" validate:"required,alignak_id"`
	ServiceID string `json:"service_id,omitempty" validate:"omitempty,alignak_id"`
	Comment   string `json:"comment" validate:"required,max=1024"`
	Fixed     bool   `json:"fixed"`
	Duration  int64  `json:"duration" validate:"gte=0"`
	StartTime int64  `json:"start_time" validate:"gte=0"`
	EndTime   int64  `json:"end_time" validate:"gte=0"`
}

// CheckRequest forces an immediate check.
type CheckRequest struct {
	HostID    string `json:"host_id" validate:"required,alignak_id"`
	ServiceID string `json:"service_id,omitempty" validate:"omitempty,alignak_id"`
	Comment   string `json:"comment" validate:"max=1024"`
}

// Submitter posts action requests and tracks them until confirmed.
type Submitter struct {
	client   Poster
	snapshot Snapshot
	tracker  *Tracker
	now      func() time.Time
}

// NewSubmitter creates a submitter.
func NewSubmitter(client Poster, snapshot Snapshot, tracker *Tracker) *Submitter {
	return &Submitter{
		client:   client,
		snapshot: snapshot,
		tracker:  tracker,
		now:      time.Now,
	}
}

// Acknowledge posts an acknowledgement.
func (s *Submitter) Acknowledge(ctx context.Context, req AckRequest) (models.PendingAction, error) {
	userID, err := s.userID()
	if err != nil {
		return models.PendingAction{}, err
	}
	payload := map[string]interface{}{
		"action":     "add",
		"host":       req.HostID,
		"service":    optional(req.ServiceID),
		"user":       userID,
		"comment":    req.Comment,
		"sticky":     req.Sticky,
		"notify":     req.Notify,
		"persistent": req.Persistent,
	}
	return s.submit(ctx, endpointAcknowledge, models.ActionAcknowledge, req.HostID, req.ServiceID, payload)
}

// Downtime posts a downtime.
func (s *Submitter) Downtime(ctx context.Context, req DowntimeRequest) (models.PendingAction, error) {
	userID, err := s.userID()
	if err != nil {
		return models.PendingAction{}, err
	}

	start := req.StartTime
	if start == 0 {
		start = s.now().Unix()
	}
	end := req.EndTime
	if end == 0 {
		d := req.Duration
		if d == 0 {
			d = int64(defaultDowntime / time.Second)
		}
		end = start + d
	}
	if end <= start {
		return models.PendingAction{}, fmt.Errorf("%w: downtime ends before it starts", ErrInvalidAction)
	}
	duration := req.Duration
	if duration == 0 {
		duration = end - start
	}

	payload := map[string]interface{}{
		"action":     "add",
		"host":       req.HostID,
		"service":    optional(req.ServiceID),
		"user":       userID,
		"comment":    req.Comment,
		"fixed":      req.Fixed,
		"duration":   duration,
		"start_time": start,
		"end_time":   end,
	}
	return s.submit(ctx, endpointDowntime, models.ActionDowntime, req.HostID, req.ServiceID, payload)
}

// ForceCheck posts a forced check request. It is confirmed through the
// processed flag of the request itself.
func (s *Submitter) ForceCheck(ctx context.Context, req CheckRequest) (models.PendingAction, error) {
	userID, err := s.userID()
	if err != nil {
		return models.PendingAction{}, err
	}
	payload := map[string]interface{}{
		"host":    req.HostID,
		"service": optional(req.ServiceID),
		"user":    userID,
		"comment": req.Comment,
	}
	return s.submit(ctx, endpointForceCheck, models.ActionProcess, req.HostID, req.ServiceID, payload)
}

func (s *Submitter) submit(ctx context.Context, endpoint string, kind models.ActionKind, hostID, serviceID string, payload map[string]interface{}) (models.PendingAction, error) {
	resp, err := s.client.Post(ctx, endpoint, payload)
	if err != nil {
		metrics.ActionsSubmitted.WithLabelValues(string(kind), "error").Inc()
		return models.PendingAction{}, fmt.Errorf("post %s: %w", endpoint, err)
	}

	href := resp.Href()
	if href == "" && kind == models.ActionProcess {
		metrics.ActionsSubmitted.WithLabelValues(string(kind), "error").Inc()
		return models.PendingAction{}, ErrNoHandle
	}
	metrics.ActionsSubmitted.WithLabelValues(string(kind), "success").Inc()

	action, err := s.tracker.Add(models.PendingAction{
		Kind:      kind,
		HostID:    hostID,
		ServiceID: serviceID,
		Handle:    href,
		Name:      s.label(hostID, serviceID),
	})
	if err != nil {
		return action, err
	}

	logging.Ctx(ctx).Info().
		Str("action_id", action.ID).
		Str("kind", string(kind)).
		Str("target", action.Name).
		Msg("Action submitted")
	return action, nil
}

func (s *Submitter) userID() (string, error) {
	user, ok := s.snapshot.User()
	if !ok || user.ID == "" {
		return "", ErrNoUser
	}
	return user.ID, nil
}

// label renders "host" or "host/service" from snapshot names, falling back
// to ids.
func (s *Submitter) label(hostID, serviceID string) string {
	host := hostID
	if h, ok := s.snapshot.Get(models.ResourceHost, hostID); ok {
		host = h.Name
	}
	if serviceID == "" {
		return host
	}
	service := serviceID
	if sv, ok := s.snapshot.Get(models.ResourceService, serviceID); ok {
		service = sv.Name
	}
	return host + "/" + service
}

// optional maps "" to JSON null.
func optional(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}
