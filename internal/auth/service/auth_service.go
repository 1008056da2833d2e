package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/repository"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/token"
)

// emailPattern matches local@domain.tld, the same check the signup form
// applies client-side.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minPasswordLen = 3
	// bcrypt only hashes the first 72 bytes; reject anything longer up front
	// instead of surfacing the library error.
	maxPasswordLen = 72
)

// AuthService handles account creation and credential checks. Passwords are
// bcrypt-hashed before they reach the store and compared with bcrypt on
// signin.
type AuthService struct {
	users  repository.UserStore
	tokens *token.Manager
}

func NewAuthService(users repository.UserStore, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// SignUp validates and creates a new account, returning the stored user and
// a signed session token.
func (s *AuthService) SignUp(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, string, error) {
	user, err := s.CreateUser(ctx, req)
	if err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// CreateUser is the admin-flow variant of SignUp: same validation, no token.
func (s *AuthService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, domain.ErrMissingFields
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}
	if len(req.Password) > maxPasswordLen {
		return nil, domain.ErrPasswordTooLong
	}
	if !domain.IsValidRole(req.Role) {
		return nil, domain.ErrInvalidRole
	}

	// The store enforces uniqueness too; checking here gives the caller a
	// clean error before hashing work is done.
	if _, err := s.users.GetByCredentialName(ctx, req.Username); err == nil {
		return nil, domain.ErrDuplicateUser
	}
	if _, err := s.users.GetByCredentialName(ctx, req.Email); err == nil {
		return nil, domain.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn checks credentials and returns the user with a signed session
// token. The name lookup is case-insensitive; the password check is bcrypt.
func (s *AuthService) SignIn(ctx context.Context, creds *domain.Credentials) (*domain.User, string, error) {
	if strings.TrimSpace(creds.UsernameOrEmail) == "" || creds.Password == "" {
		return nil, "", domain.ErrMissingFields
	}

	user, err := s.users.GetByCredentialName(ctx, creds.UsernameOrEmail)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// DeleteUser removes an account. Emergency requests referencing the user
// are left in place; their client/responder joins resolve to null.
func (s *AuthService) DeleteUser(ctx context.Context, id string) (bool, error) {
	return s.users.Delete(ctx, id)
}
