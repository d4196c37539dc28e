package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/config"
)

var (
	// ErrInvalidCredentials means the username/password pair matched no user.
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	// ErrUserExists means the username is already taken.
	ErrUserExists = errors.New("service: user already exists")
	// ErrInvalidRole means the role is not one of the known roles.
	ErrInvalidRole = errors.New("service: invalid role")
)

// AuthService 认证服务. The user table is static and in-process; created
// users last until restart.
type AuthService struct {
	mu    sync.RWMutex
	users map[string]entity.User
	cfg   *config.Config
}

// NewAuthService creates the service prefilled with the demo role table.
func NewAuthService(cfg *config.Config) *AuthService {
	users := make(map[string]entity.User)
	for _, u := range entity.DefaultUsers() {
		users[u.Username] = u
	}
	return &AuthService{users: users, cfg: cfg}
}

// TokenResult is the signed session token with its lifetime in seconds.
type TokenResult struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Authenticate checks the credentials against the user table.
func (s *AuthService) Authenticate(username, password string) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok || u.Password != password {
		return entity.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GenerateToken signs an access token carrying the user's role.
func (s *AuthService) GenerateToken(user entity.User) (*TokenResult, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"uid":  user.Username,
		"name": user.Username,
		"role": user.Role,
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":  uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &TokenResult{
		AccessToken: signed,
		ExpiresIn:   int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
	}, nil
}

// CreateUser adds a user to the in-process table.
func (s *AuthService) CreateUser(username, password, role string) (entity.User, error) {
	if role != entity.RoleAdmin && role != entity.RoleOperador && role != entity.RoleInvitado {
		return entity.User{}, ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return entity.User{}, ErrUserExists
	}
	u := entity.User{Username: username, Password: password, Role: role}
	s.users[username] = u
	return u, nil
}

// ListUsers returns all users sorted by username.
func (s *AuthService) ListUsers() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
