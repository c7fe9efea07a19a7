package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	CleanupSessions(ctx context.Context) (int64, error)
}

// SessionMeta describes the client a session is issued to.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register creates the account and its empty profile. The user logs in
// separately.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs...)
	}

	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s: %w", req.Username, ErrAlreadyExists)
	}

	existing, err = s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", req.Email, ErrAlreadyExists)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hashedPassword,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user %s: %w", req.Username, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if _, err := s.repo.Profile.Ensure(ctx, user.ID); err != nil {
		// the profile is ensured again on first read
		s.log.Warn("Failed to create profile after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, nil)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs...)
	}

	identifier := strings.TrimSpace(req.Username)

	user, err := s.repo.User.FindByUsername(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil && strings.Contains(identifier, "@") {
		user, err = s.repo.User.FindByEmail(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("identifier", identifier))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		if err := s.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
			s.log.Error("Failed to revoke sessions of inactive user", zap.Error(err))
		}
		return nil, fmt.Errorf("account is deactivated: %w", ErrForbidden)
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("malformed token: %w", ErrUnauthorized)
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) CleanupSessions(ctx context.Context) (int64, error) {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", removed))
	}
	return removed, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, meta SessionMeta) (*entity.Session, error) {
	expiry := s.config.Session.ExpiryHours
	if expiry <= 0 {
		expiry = 24
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(expiry) * time.Hour),
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}
