// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package inquiry turns a visitor's contact form submission into a stored
// lead and unlocks the project it was submitted for.
package inquiry

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/store"
)

// DefaultDelay matches the perceived-latency pause shown to visitors while
// their inquiry is "processed".
const DefaultDelay = 1200 * time.Millisecond

var (
	ErrNameRequired   = errors.New("inquiry: name is required")
	ErrEmailRequired  = errors.New("inquiry: email is required")
	ErrPhoneRequired  = errors.New("inquiry: phone is required")
	ErrUnknownProject = errors.New("inquiry: unknown project")
)

// GeoResolver maps a remote address to a country name. Implementations
// return "" when the address cannot be resolved.
type GeoResolver interface {
	Country(ip net.IP) string
}

// Submission is the raw contact form input plus request metadata captured
// by the handler.
type Submission struct {
	ProjectID string
	Name      string
	Email     string
	Phone     string
	Message   string

	RemoteAddr string
	UserAgent  string
}

// Service validates submissions, persists them as leads and marks the
// project enquired. The clock, sleeper and geo resolver are injectable so
// tests run without wall-clock pauses.
type Service struct {
	store *store.Store
	geo   GeoResolver
	log   *slog.Logger
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
	delay time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithGeoResolver enables country lookup for captured leads.
func WithGeoResolver(g GeoResolver) Option {
	return func(s *Service) { s.geo = g }
}

// WithDelay overrides the perceived-latency pause.
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSleeper overrides the pause implementation.
func WithSleeper(sleep func(ctx context.Context, d time.Duration)) Option {
	return func(s *Service) { s.sleep = sleep }
}

func New(st *store.Store, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store: st,
		log:   log,
		now:   time.Now,
		sleep: sleepCtx,
		delay: DefaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Capture validates the submission, stores the lead and unlocks the
// project. The returned lead is the stored record.
func (s *Service) Capture(ctx context.Context, sub Submission) (model.Lead, error) {
	if err := validate(sub); err != nil {
		return model.Lead{}, err
	}

	project, ok := s.store.ProjectByID(ctx, sub.ProjectID)
	if !ok {
		return model.Lead{}, ErrUnknownProject
	}

	s.sleep(ctx, s.delay)
	if err := ctx.Err(); err != nil {
		return model.Lead{}, err
	}

	lead := model.Lead{
		ID:          uuid.NewString(),
		ProjectID:   project.ID,
		ProjectName: project.Title,
		Name:        strings.TrimSpace(sub.Name),
		Email:       strings.TrimSpace(sub.Email),
		Phone:       strings.TrimSpace(sub.Phone),
		Message:     strings.TrimSpace(sub.Message),
		Timestamp:   s.now().UnixMilli(),
		IPAddress:   remoteIP(sub.RemoteAddr),
		Device:      deviceSummary(sub.UserAgent),
	}
	if s.geo != nil {
		if ip := net.ParseIP(lead.IPAddress); ip != nil {
			lead.Country = s.geo.Country(ip)
		}
	}

	if err := s.store.AddLead(ctx, lead); err != nil {
		return model.Lead{}, err
	}
	if err := s.store.MarkEnquired(ctx, project.ID); err != nil {
		return model.Lead{}, err
	}

	s.log.Info("lead captured",
		"lead_id", lead.ID,
		"project_id", lead.ProjectID,
		"project", lead.ProjectName)
	return lead, nil
}

func validate(sub Submission) error {
	switch {
	case strings.TrimSpace(sub.Name) == "":
		return ErrNameRequired
	case strings.TrimSpace(sub.Email) == "":
		return ErrEmailRequired
	case strings.TrimSpace(sub.Phone) == "":
		return ErrPhoneRequired
	}
	return nil
}

// remoteIP strips the port from an http.Request RemoteAddr.
func remoteIP(addr string) string {
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// deviceSummary condenses a User-Agent header to "Browser major (OS)".
func deviceSummary(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.Parse(raw)
	if ua.Name == "" {
		return ""
	}
	summary := ua.Name
	if major := strings.SplitN(ua.Version, ".", 2)[0]; major != "" {
		summary += " " + major
	}
	if ua.OS != "" {
		summary += " (" + ua.OS + ")"
	}
	return summary
}
