package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
	"github.com/boardhouse/board-service/internal/token"
)

// AuthService implements registration, the issuance entry point (login) and
// the revocation entry point (logout). Login couples minting with storage:
// the refresh token is not handed out unless its record was persisted.
type AuthService struct {
	repo  ports.AuthRepository
	store ports.TokenStore
	codec *token.Codec
}

func NewAuthService(repo ports.AuthRepository, store ports.TokenStore, codec *token.Codec) *AuthService {
	return &AuthService{repo: repo, store: store, codec: codec}
}

func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login verifies the password and issues the access/refresh pair. The fresh
// refresh token overwrites any prior record for the subject, so a new login
// unilaterally invalidates the previous session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	access, err := s.codec.Mint(user.Username, user.Role, domain.TokenKindAccess)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.codec.Mint(user.Username, user.Role, domain.TokenKindRefresh)
	if err != nil {
		return nil, nil, err
	}

	if err := s.store.Save(ctx, user.Username, refresh); err != nil {
		return nil, nil, err
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Logout deletes the server-side refresh record. Clearing only the client's
// cookies would leave the refresh token usable by anyone holding a copy.
func (s *AuthService) Logout(ctx context.Context, subject string) error {
	return s.store.Delete(ctx, subject)
}

// Resolve implements ports.IdentityResolver against user storage.
func (s *AuthService) Resolve(ctx context.Context, subject string) (*domain.Identity, error) {
	user, err := s.repo.FindByUsername(ctx, subject)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{Subject: user.Username, Role: user.Role}, nil
}
