package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doorknock-service/internal/auth"
	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/events"
	"github.com/spec-kit/doorknock-service/internal/repository"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// AuthService handles both sign-in paths: password login for the desk
// tiers and phone passcode login for field reps. Failed logins return the
// same generic message regardless of which check failed.
type AuthService struct {
	actors      repository.ActorRepository
	passcodes   repository.PasscodeStore
	tokens      *auth.TokenManager
	dispatcher  events.Dispatcher
	passcodeTTL time.Duration
}

// NewAuthService constructs the service.
func NewAuthService(actors repository.ActorRepository, passcodes repository.PasscodeStore, tokens *auth.TokenManager, dispatcher events.Dispatcher, passcodeTTL time.Duration) *AuthService {
	return &AuthService{
		actors:      actors,
		passcodes:   passcodes,
		tokens:      tokens,
		dispatcher:  dispatcher,
		passcodeTTL: passcodeTTL,
	}
}

// Session is an issued access token plus the authenticated actor.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Actor     *domain.Actor
}

// LoginPassword authenticates an email/password pair.
func (s *AuthService) LoginPassword(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	actor, err := s.actors.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if actor.PasswordHash == "" || auth.ComparePassword(actor.PasswordHash, password) != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.openSession(actor)
}

// RequestPasscode issues a short-lived numeric code for the phone number
// and hands it to the delivery pipeline. An unknown or inactive phone gets
// the same silence as a known one so the endpoint cannot be used to probe
// which numbers exist.
func (s *AuthService) RequestPasscode(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return apperrors.NewValidationError("phone is required", nil)
	}

	actor, err := s.actors.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}
	if !actor.Active {
		return nil
	}

	code, err := generatePasscode()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.passcodes.Save(ctx, phone, code, s.passcodeTTL); err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPasscodeIssued,
			SubjectID: phone,
			ActorID:   actor.ID,
			Timestamp: time.Now(),
			Payload: events.PasscodeIssuedPayload{
				Phone:     phone,
				Code:      code,
				ExpiresIn: s.passcodeTTL,
			},
		})
	}
	return nil
}

// VerifyPasscode exchanges a valid phone/code pair for a session. The code
// is single-use; it is deleted on success.
func (s *AuthService) VerifyPasscode(ctx context.Context, phone, code string) (*Session, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" || code == "" {
		return nil, apperrors.NewValidationError("phone and code are required", nil)
	}

	stored, err := s.passcodes.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrPasscodeNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if stored != code {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	actor, err := s.actors.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}

	_ = s.passcodes.Delete(ctx, phone)
	return s.openSession(actor)
}

func (s *AuthService) openSession(actor *domain.Actor) (*Session, error) {
	if !actor.Active {
		return nil, apperrors.NewUnauthorized("actor deactivated")
	}
	token, expiresAt, err := s.tokens.GenerateToken(actor)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Actor: actor}, nil
}

// generatePasscode returns a 6 digit code from crypto/rand.
func generatePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
