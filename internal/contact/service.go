package contact

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/opendataloader-project/odlsite/internal/config"
	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/metrics"
)

// Service validates submissions and hands them to the mailer. It never retries.
type Service struct {
	cfg      config.ContactConfig
	siteHost string
	mailer   Mailer
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService wires the relay. mailer may be nil when the provider is not
// configured; submissions then fail with a configuration error.
func NewService(cfg config.ContactConfig, siteBaseURL string, mailer Mailer, opts ...Option) *Service {
	host := siteBaseURL
	if u, err := url.Parse(siteBaseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	s := &Service{
		cfg:      cfg,
		siteHost: host,
		mailer:   mailer,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig builds a Service with a Resend mailer when an API key is present.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Service, error) {
	var mailer Mailer
	if cfg.Contact.Configured() {
		m, err := NewResendMailer(cfg.Contact.ResendAPIKey, cfg.Contact.ResendURL, nil)
		if err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid email provider URL").Build()
		}
		mailer = m
	}
	return NewService(cfg.Contact, cfg.Site.BaseURL, mailer, opts...), nil
}

// Submit validates and sends one submission. It returns a reference id used to
// correlate logs. Errors are classified and carry the public message.
func (s *Service) Submit(ctx context.Context, sub Submission) (string, error) {
	ref := uuid.NewString()
	sub = sub.Normalize()

	if err := sub.Validate(); err != nil {
		s.recorder.IncContactOutcome(metrics.ResultRejected)
		return ref, derrors.ValidationError(MsgRequired).
			WithCause(err).
			WithContext("reference", ref).
			Build()
	}

	if s.mailer == nil || !s.cfg.Configured() {
		s.recorder.IncContactOutcome(metrics.ResultFailure)
		return ref, derrors.ConfigError(MsgNotConfigured).
			WithContext("reference", ref).
			Build()
	}

	msg := Compose(sub, s.siteHost, s.cfg.From, s.cfg.To)
	id, err := s.mailer.Send(ctx, msg)
	if err != nil {
		s.recorder.IncContactOutcome(metrics.ResultFailure)
		return ref, derrors.UpstreamError(MsgSendFailed).
			WithCause(err).
			WithContext("reference", ref).
			WithContext("provider", "resend").
			Build()
	}

	s.recorder.IncContactOutcome(metrics.ResultSuccess)
	s.logger.InfoContext(ctx, "Contact form submitted",
		logfields.Reference(ref),
		logfields.Provider("resend"),
		slog.String("message_id", id))
	return ref, nil
}
