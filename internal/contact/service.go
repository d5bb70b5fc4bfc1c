package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jordanlepera/essencek/pkg/id"
	"github.com/jordanlepera/essencek/pkg/logger"
	"github.com/jordanlepera/essencek/pkg/validator"
)

// Service runs submissions through validation, screening and delivery,
// one step after the other.
type Service struct {
	screener Screener
	mailer   Mailer
	logger   *slog.Logger
	newRef   func() string
	config   Config
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReferenceGenerator replaces id.NewReference for submission references.
func WithReferenceGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newRef = fn
		}
	}
}

// NewService creates a Service. It panics on nil dependencies.
func NewService(cfg Config, screener Screener, mailer Mailer, opts ...Option) *Service {
	if screener == nil || mailer == nil {
		panic("contact: screener and mailer are required")
	}
	s := &Service{
		screener: screener,
		mailer:   mailer,
		logger:   logger.NewNope(),
		newRef:   id.NewReference,
		config:   cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks form and returns the Submission, or a *ValidationError
// naming every failing field.
func (s *Service) Validate(form Form) (Submission, error) {
	rules := []validator.Rule{
		validator.Email("email", form.Email),
		validator.Phone("phone", form.Phone, s.config.MinPhoneLength),
		validator.MinLenString("message", form.Message, s.config.MinMessageLength),
	}
	if s.config.MaxMessageLength > 0 {
		rules = append(rules, validator.MaxLenString("message", form.Message, s.config.MaxMessageLength))
	}
	if err := validator.Apply(rules...); err != nil {
		return Submission{}, &ValidationError{Fields: validator.ExtractValidationErrors(err)}
	}

	return Submission{
		Email:       form.Email,
		Phone:       form.Phone,
		PhoneDigits: validator.StripSpaces(form.Phone),
		Message:     form.Message,
	}, nil
}

// Submit processes one submission. It never panics and never fails: every
// outcome, including screening and delivery errors, is a SubmissionResult.
func (s *Service) Submit(ctx context.Context, form Form, meta Meta) SubmissionResult {
	ref, err := s.process(ctx, form, meta)
	res := ResultFromError(err)
	s.log(ctx, ref, meta, res, err)
	return res
}

func (s *Service) process(ctx context.Context, form Form, meta Meta) (string, error) {
	sub, err := s.Validate(form)
	if err != nil {
		return "", err
	}
	sub.Reference = s.newRef()

	if err := s.screen(ctx, sub, meta); err != nil {
		return sub.Reference, err
	}
	return sub.Reference, s.deliver(ctx, sub)
}

func (s *Service) screen(ctx context.Context, sub Submission, meta Meta) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrTransientService, r)
		}
	}()

	decision, err := s.screener.Screen(ctx, Screening{Email: sub.Email, Meta: meta})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransientService, err)
	}
	if decision.Denied() {
		return &AbuseDeniedError{Decision: decision}
	}
	return nil
}

func (s *Service) deliver(ctx context.Context, sub Submission) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrDelivery, r)
		}
	}()

	if err := s.mailer.Notify(ctx, sub); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

func (s *Service) log(ctx context.Context, ref string, meta Meta, res SubmissionResult, err error) {
	attrs := []any{
		slog.String("reference", ref),
		slog.String("ip", meta.IP),
		slog.String("result", res.MessageKey),
	}
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "contact message sent", attrs...)
	case res.MessageKey == KeyValidation:
		fields := make([]string, 0, len(res.FieldErrors))
		for f := range res.FieldErrors {
			fields = append(fields, f)
		}
		s.logger.InfoContext(ctx, "contact form rejected", append(attrs, slog.Any("fields", fields))...)
	case res.MessageKey == KeySecurityError || res.MessageKey == KeyDeliveryError:
		s.logger.ErrorContext(ctx, "contact submission failed", append(attrs, slog.String("error", err.Error()))...)
	default:
		s.logger.WarnContext(ctx, "contact submission denied", append(attrs, slog.String("error", err.Error()))...)
	}
}
