package auth

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/empdesk/empdesk-console/internal/models"
	consoleerrors "github.com/empdesk/empdesk-console/pkg/errors"
	"github.com/empdesk/empdesk-console/pkg/logger"
)

// AuthAPI is the slice of the API client the auth service uses.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Register(ctx context.Context, req models.RegisterRequest) error
}

// SessionWriter is the slice of the session store the auth service uses.
type SessionWriter interface {
	Set(sess models.Session) error
	Clear()
}

// Service handles login, registration and logout. Credentials are validated
// locally before any network call.
type Service struct {
	api      AuthAPI
	sessions SessionWriter
	validate *validator.Validate
}

// NewService creates an auth service.
func NewService(api AuthAPI, sessions SessionWriter) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		validate: validator.New(),
	}
}

// Login validates the credentials, obtains a session from the server and
// stores it.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return credentialError(err)
	}

	sess, err := s.api.Login(ctx, req)
	if err != nil {
		return err
	}
	if sess.Username == "" {
		sess.Username = req.Username
	}
	if err := s.sessions.Set(*sess); err != nil {
		return err
	}

	logger.Info("Logged in", zap.String("username", sess.Username))
	return nil
}

// Register creates a new account. It does not log the user in; the server
// expects a separate login afterwards.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return credentialError(err)
	}
	return s.api.Register(ctx, req)
}

// Logout clears the stored session. Purely local; the token simply stops
// being presented.
func (s *Service) Logout() {
	s.sessions.Clear()
	logger.Info("Logged out")
}

// credentialError converts validator failures into the console's validation
// error with a single readable message.
func credentialError(err error) error {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return err
	}

	fe := fieldErrors[0]
	msg := fe.Field() + " is invalid"
	switch fe.Tag() {
	case "required":
		msg = fe.Field() + " is required"
	case "gt":
		msg = fe.Field() + " must be greater than " + fe.Param()
	}
	return &CredentialError{Field: fe.Field(), Message: msg}
}

// CredentialError is a client-side failure of the login/registration form.
type CredentialError struct {
	Field   string
	Message string
}

func (e *CredentialError) Error() string {
	return e.Message
}

func (e *CredentialError) Unwrap() error {
	return consoleerrors.ErrValidation
}
