package contact_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/pkg/logger"
)

type mockScreener struct {
	mock.Mock
}

func (m *mockScreener) Screen(ctx context.Context, s contact.Screening) (contact.Decision, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(contact.Decision), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Notify(ctx context.Context, s contact.Submission) error {
	return m.Called(ctx, s).Error(0)
}

type panicScreener struct{}

func (panicScreener) Screen(context.Context, contact.Screening) (contact.Decision, error) {
	panic("redis client is nil")
}

type panicMailer struct{}

func (panicMailer) Notify(context.Context, contact.Submission) error {
	panic("template missing")
}

func validForm() contact.Form {
	return contact.Form{
		Email:   "a@b.com",
		Phone:   "0600000000",
		Message: "Bonjour, je voudrais un devis.",
	}
}

func meta() contact.Meta {
	return contact.Meta{IP: "203.0.113.7", UserAgent: "Mozilla/5.0", RequestID: "req-1"}
}

func newService(s contact.Screener, m contact.Mailer) *contact.Service {
	return contact.NewService(contact.DefaultConfig(), s, m,
		contact.WithReferenceGenerator(func() string { return "ref-1" }))
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	screener := &mockScreener{}
	screener.On("Screen", mock.Anything, contact.Screening{Email: "a@b.com", Meta: meta()}).
		Return(contact.Allow, nil).Once()

	mailer := &mockMailer{}
	mailer.On("Notify", mock.Anything, contact.Submission{
		Email:       "a@b.com",
		Phone:       "0600000000",
		PhoneDigits: "0600000000",
		Message:     "Bonjour, je voudrais un devis.",
		Reference:   "ref-1",
	}).Return(nil).Once()

	res := newService(screener, mailer).Submit(context.Background(), validForm(), meta())

	assert.True(t, res.Success)
	assert.Equal(t, "message sent successfully", res.Message)
	assert.Empty(t, res.FieldErrors)
	screener.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSubmit_ValidationFailsFast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		form   contact.Form
		fields []string
	}{
		{
			name:   "bad email",
			form:   contact.Form{Email: "not-an-email", Phone: "0600000000", Message: "Bonjour, je voudrais un devis."},
			fields: []string{"email"},
		},
		{
			name:   "phone too short once spaces are removed",
			form:   contact.Form{Email: "a@b.com", Phone: "06 00 00 00", Message: "Bonjour, je voudrais un devis."},
			fields: []string{"phone"},
		},
		{
			name:   "short message",
			form:   contact.Form{Email: "a@b.com", Phone: "0600000000", Message: "Bonjour"},
			fields: []string{"message"},
		},
		{
			name:   "everything wrong",
			form:   contact.Form{},
			fields: []string{"email", "phone", "message"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			screener := &mockScreener{}
			mailer := &mockMailer{}

			res := newService(screener, mailer).Submit(context.Background(), tt.form, meta())

			assert.False(t, res.Success)
			assert.Equal(t, "fix the errors below", res.Message)
			assert.Len(t, res.FieldErrors, len(tt.fields))
			for _, f := range tt.fields {
				assert.NotEmpty(t, res.FieldErrors[f], f)
			}
			screener.AssertNotCalled(t, "Screen", mock.Anything, mock.Anything)
			mailer.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_SpacedPhoneAccepted(t *testing.T) {
	t.Parallel()

	screener := &mockScreener{}
	screener.On("Screen", mock.Anything, mock.Anything).Return(contact.Allow, nil)
	mailer := &mockMailer{}
	mailer.On("Notify", mock.Anything, mock.MatchedBy(func(s contact.Submission) bool {
		return s.Phone == "06 00 00 00 00" && s.PhoneDigits == "0600000000"
	})).Return(nil).Once()

	form := validForm()
	form.Phone = "06 00 00 00 00"
	res := newService(screener, mailer).Submit(context.Background(), form, meta())
	assert.True(t, res.Success)
	mailer.AssertExpectations(t)
}

func TestSubmit_LongMessage(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 20000)

	t.Run("accepted by default", func(t *testing.T) {
		t.Parallel()
		screener := &mockScreener{}
		screener.On("Screen", mock.Anything, mock.Anything).Return(contact.Allow, nil).Once()
		mailer := &mockMailer{}
		mailer.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

		form := validForm()
		form.Message = long
		res := newService(screener, mailer).Submit(context.Background(), form, meta())
		assert.True(t, res.Success)
		mailer.AssertExpectations(t)
	})

	t.Run("configured cap", func(t *testing.T) {
		t.Parallel()
		cfg := contact.DefaultConfig()
		cfg.MaxMessageLength = 100

		screener := &mockScreener{}
		screener.On("Screen", mock.Anything, mock.Anything).Return(contact.Allow, nil).Once()
		mailer := &mockMailer{}
		mailer.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()
		svc := contact.NewService(cfg, screener, mailer)

		form := validForm()
		form.Message = strings.Repeat("a", 100)
		assert.True(t, svc.Submit(context.Background(), form, meta()).Success)

		form.Message = strings.Repeat("a", 101)
		res := svc.Submit(context.Background(), form, meta())
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.FieldErrors["message"])
		screener.AssertNumberOfCalls(t, "Screen", 1)
	})
}

func TestSubmit_Denials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		decision contact.Decision
		message  string
	}{
		{contact.DenyBot, "suspicious activity detected"},
		{contact.DenyRateLimited, "too many attempts, retry later"},
		{contact.DenyInvalidEmail, "invalid or disallowed email address"},
		{contact.DenyOther, "access denied"},
		{contact.DecisionUnknown, "access denied"},
	}
	for _, tt := range tests {
		t.Run(tt.decision.String(), func(t *testing.T) {
			t.Parallel()
			screener := &mockScreener{}
			screener.On("Screen", mock.Anything, mock.Anything).Return(tt.decision, nil).Once()
			mailer := &mockMailer{}

			res := newService(screener, mailer).Submit(context.Background(), validForm(), meta())

			assert.False(t, res.Success)
			assert.Equal(t, tt.message, res.Message)
			assert.Empty(t, res.FieldErrors)
			mailer.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_ScreeningFailure(t *testing.T) {
	t.Parallel()

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		screener := &mockScreener{}
		screener.On("Screen", mock.Anything, mock.Anything).
			Return(contact.DecisionUnknown, errors.New("dial tcp: connection refused")).Once()
		mailer := &mockMailer{}

		svc := contact.NewService(contact.DefaultConfig(), screener, mailer,
			contact.WithLogger(logger.NewWithWriter(&buf, logger.Config{Level: "info"})))
		res := svc.Submit(context.Background(), validForm(), meta())

		assert.False(t, res.Success)
		assert.Equal(t, "security error, retry", res.Message)
		assert.NotContains(t, res.Message, "connection refused")
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), "connection refused")
		mailer.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("panic", func(t *testing.T) {
		t.Parallel()
		mailer := &mockMailer{}
		var res contact.SubmissionResult
		require.NotPanics(t, func() {
			res = newService(panicScreener{}, mailer).Submit(context.Background(), validForm(), meta())
		})
		assert.Equal(t, "security error, retry", res.Message)
	})
}

func TestSubmit_DeliveryFailure(t *testing.T) {
	t.Parallel()

	allow := func() *mockScreener {
		s := &mockScreener{}
		s.On("Screen", mock.Anything, mock.Anything).Return(contact.Allow, nil)
		return s
	}

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		mailer := &mockMailer{}
		mailer.On("Notify", mock.Anything, mock.Anything).Return(errors.New("resend: 500")).Once()

		res := newService(allow(), mailer).Submit(context.Background(), validForm(), meta())
		assert.False(t, res.Success)
		assert.Equal(t, "error sending email", res.Message)
	})

	t.Run("panic", func(t *testing.T) {
		t.Parallel()
		var res contact.SubmissionResult
		require.NotPanics(t, func() {
			res = newService(allow(), panicMailer{}).Submit(context.Background(), validForm(), meta())
		})
		assert.Equal(t, "error sending email", res.Message)
	})
}

func TestNewService_RequiresDependencies(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { contact.NewService(contact.DefaultConfig(), nil, &mockMailer{}) })
	assert.Panics(t, func() { contact.NewService(contact.DefaultConfig(), &mockScreener{}, nil) })
}
