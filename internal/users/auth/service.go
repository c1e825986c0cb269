// Copyright (c) 2026 NotesAI. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
	"github.com/cevheri/noteai/internal/platform/sec"
	"github.com/cevheri/noteai/internal/platform/validate"
	"github.com/cevheri/noteai/pkg/uuid"
)

// # Contracts & Types

// RegistrationPolicy reports whether new sign-ups are currently accepted.
type RegistrationPolicy interface {
	RegistrationEnabled(ctx context.Context) bool
}

type openRegistration struct{}

func (openRegistration) RegistrationEnabled(context.Context) bool { return true }

// Service implements user authentication use cases and the session resolver.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokens            *sec.TokenService
	registration      RegistrationPolicy
	sessionTTL        time.Duration
	now               func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokens *sec.TokenService,
	sessionTTL time.Duration,
) *Service {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokens:            tokens,
		registration:      openRegistration{},
		sessionTTL:        sessionTTL,
		now:               time.Now,
	}
}

// WithRegistrationPolicy gates [Service.Register] on policy. A nil policy
// reopens registration.
func (service *Service) WithRegistrationPolicy(policy RegistrationPolicy) *Service {
	if policy == nil {
		policy = openRegistration{}
	}
	service.registration = policy
	return service
}

// WithClock replaces the time source used for session expiry.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// normalizeEmail is the canonical stored form of an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Session Resolution

/*
Resolve maps a raw credential to the user owning a live session.

Description: Verifies the token signature, loads the session it references,
rejects it when expiresAt <= now, then loads the session's user. Any failure
(including storage faults, which are logged) yields nil.

Parameters:
  - context: context.Context
  - credential: string (cookie value or bearer token)

Returns:
  - *User: The session's user, or nil
  - *Session: The live session, or nil
*/
func (service *Service) Resolve(context context.Context, credential string) (*User, *Session) {
	logger := ctxutil.GetLogger(context)

	// 1. Signature and shape
	claims, err := service.tokens.Parse(credential)
	if err != nil {
		logger.DebugContext(context, "session_token_rejected", slog.String("error", err.Error()))
		return nil, nil
	}

	// 2. Session lookup
	session, err := service.sessionRepository.FindByID(context, claims.SessionID())
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			logger.ErrorContext(context, "session_resolve_failed",
				slog.String("stage", "session"),
				slog.Any("error", err),
			)
		}
		return nil, nil
	}

	// 3. Read-time expiry and token binding
	if session.Expired(service.now()) || session.UserID != claims.UserID() {
		return nil, nil
	}

	// 4. User lookup
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			logger.ErrorContext(context, "session_resolve_failed",
				slog.String("stage", "user"),
				slog.Any("error", err),
			)
		}
		return nil, nil
	}

	return user, session
}

// ResolveIdentity implements the middleware resolver contract.
func (service *Service) ResolveIdentity(context context.Context, credential string) *sec.Identity {
	user, session := service.Resolve(context, credential)
	if user == nil {
		return nil
	}
	return user.Identity(session.ID)
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (role user)
  - error: Forbidden when sign-ups are closed, ValidationError, Conflict, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// 1. Settings may close sign-ups entirely
	if !service.registration.RegistrationEnabled(context) {
		return nil, apperr.Forbidden("Registration is currently disabled").WithCode(CodeRegistrationDisabled)
	}

	user, err := service.createUser(context, input, sec.RoleUser)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// createUser validates input and persists a new account with role.
func (service *Service) createUser(context context.Context, input RegisterInput, role sec.UserRole) (*User, error) {

	// 1. Input rules
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	err := (&validate.Validator{}).
		Required(FieldName, name).
		MaxLen(FieldName, name, MaxNameLength).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Err()
	if err != nil {
		return nil, err
	}

	// 2. Uniqueness, compared case-insensitively
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	now := service.now()
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult represents a successfully established user session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

/*
Login validates user credentials and opens a new session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Signed session token and the user
  - error: Unauthorized (generic, to prevent enumeration) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	invalid := apperr.Unauthorized("Invalid email or password")

	user, err := service.userRepository.FindByEmail(context, normalizeEmail(input.Email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// bcrypt compares in constant time
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, invalid
	}

	now := service.now()
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(service.sessionTTL),
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	token, err := service.tokens.Issue(session.ID, user.ID, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_logged_in",
		slog.String("user_id", user.ID),
		slog.String("session_id", session.ID),
	)

	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

/*
Logout deletes the session referenced by credential.

Description: Idempotent; an unreadable credential or a missing session is
already "logged out".

Parameters:
  - context: context.Context
  - credential: string

Returns:
  - error: Storage failures
*/
func (service *Service) Logout(context context.Context, credential string) error {
	if credential == "" {
		return nil
	}

	claims, err := service.tokens.Parse(credential)
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Delete(context, claims.SessionID()); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Profile

// Me returns the account behind an authenticated identity.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// ProfileInput carries the optional profile fields; nil means unchanged.
type ProfileInput struct {
	Name   *string
	Avatar *string
}

/*
UpdateProfile edits the caller's own display name and avatar.

An empty avatar string clears it.

Parameters:
  - context: context.Context
  - userID: string
  - input: ProfileInput

Returns:
  - *User: Updated entity
  - error: ValidationError, NotFound, or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input ProfileInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
		user.Name = name
	}
	if input.Avatar != nil {
		if avatar := strings.TrimSpace(*input.Avatar); avatar == "" {
			user.Avatar = nil
		} else {
			user.Avatar = &avatar
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user.UpdatedAt = service.now()
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Bootstrap

/*
EnsureBootstrapAdmin guarantees that email names a super_admin account.

Description: Creates the account when missing, or promotes an existing one.
The password is only used on creation.

Parameters:
  - context: context.Context
  - email: string
  - password: string
  - name: string

Returns:
  - *User: The super_admin account
  - error: ValidationError or storage errors
*/
func (service *Service) EnsureBootstrapAdmin(context context.Context, email, password, name string) (*User, error) {
	logger := ctxutil.GetLogger(context)

	user, err := service.userRepository.FindByEmail(context, normalizeEmail(email))
	switch {
	case err == nil:
		if user.Role == sec.RoleSuperAdmin {
			return user, nil
		}
		user.Role = sec.RoleSuperAdmin
		user.UpdatedAt = service.now()
		if err := service.userRepository.Update(context, user); err != nil {
			return nil, err
		}
		logger.InfoContext(context, "bootstrap_admin_promoted", slog.String("user_id", user.ID))
		return user, nil

	case apperr.HasCode(err, apperr.CodeNotFound):
		// Sign-up settings do not apply to the operator account.
		user, err := service.createUser(context, RegisterInput{Name: name, Email: email, Password: password}, sec.RoleSuperAdmin)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(context, "bootstrap_admin_created", slog.String("user_id", user.ID))
		return user, nil

	default:
		return nil, fmt.Errorf("auth_service_bootstrap_failed: %w", err)
	}
}
