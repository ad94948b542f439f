package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/pkg/logger"
	"tria-ai-be/internal/pkg/mailer"
	"tria-ai-be/internal/repository/specification"
	"tria-ai-be/internal/repository/unitofwork"

	"tria-ai-be/pkg/events"
	pktNats "tria-ai-be/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 30 * 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ValidateSession(ctx context.Context, token string) (uuid.UUID, error)
	Logout(ctx context.Context, token string) error
	CleanupExpiredSessions(ctx context.Context) (int64, error)
	StartSessionCleanup(ctx context.Context, interval time.Duration)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// generateSessionToken returns 32 random bytes hex-encoded.
func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Check for existing user
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.NewStorage("register lookup", err)
	}
	if existing != nil {
		return nil, apperror.NewConflict("user", "email already registered")
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	var displayName *string
	if req.DisplayName != "" {
		displayName = &req.DisplayName
	}

	// Registration counts as the first login, so a fresh account is already
	// inside the 30-day activity window.
	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: &hashStr,
		DisplayName:  displayName,
		Timezone:     "UTC",
		Language:     "en",
		LoginCount:   1,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 3. Create the user, default preferences and first session atomically
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.NewStorage("register begin", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.NewStorage("register user", err)
	}

	prefs := &entity.UserPreferences{
		Id:        uuid.New(),
		UserId:    user.Id,
		Theme:     "system",
		Settings:  map[string]interface{}{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreatePreferences(ctx, prefs); err != nil {
		return nil, apperror.NewStorage("register preferences", err)
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}
	session := &entity.UserSession{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: time.Now().Add(SessionTTL),
		CreatedAt: time.Now(),
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, apperror.NewStorage("register session", err)
	}

	if err := uow.ActivityRepository().Append(ctx, &entity.ActivityLog{
		Id:           uuid.New(),
		UserId:       user.Id,
		Action:       constant.ActivityUserRegistered,
		ResourceType: "user",
		ResourceId:   &user.Id,
		CreatedAt:    time.Now(),
	}); err != nil {
		return nil, apperror.NewStorage("register activity", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.NewStorage("register commit", err)
	}

	// SEND REAL EMAIL
	go func() {
		name := ""
		if user.DisplayName != nil {
			name = *user.DisplayName
		}
		if emailErr := s.emailService.SendWelcome(user.Email, name); emailErr != nil {
			s.logger.Warn("AuthService", "Failed to send welcome email", map[string]interface{}{"error": emailErr.Error()})
		}
	}()

	// PUBLISH EVENT
	if s.eventPublisher != nil {
		event := events.New(events.TypeUserRegistered, map[string]interface{}{
			"user_id": user.Id,
			"email":   user.Email,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("AuthService", "Failed to publish USER_REGISTERED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.RegisterResponse{
		User:         toUserDTO(user),
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Check if user exists
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.NewStorage("login lookup", err)
	}
	if user == nil {
		return nil, apperror.NewAuthentication("invalid credentials")
	}

	// 2. Check if user has a password (might be OAuth only)
	if user.PasswordHash == nil {
		return nil, apperror.NewAuthentication("account uses Google sign-in")
	}

	// 3. Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthentication("invalid credentials")
	}

	// 4. Issue a fresh session
	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}
	session := &entity.UserSession{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: time.Now().Add(SessionTTL),
		CreatedAt: time.Now(),
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, apperror.NewStorage("login session", err)
	}

	// 5. Bump the login counter server-side, best effort
	if err := uow.UserRepository().RecordLogin(ctx, user.Id); err != nil {
		s.logger.Warn("AuthService", "Failed to record login", map[string]interface{}{"user_id": user.Id.String(), "error": err.Error()})
	}

	// PUBLISH EVENT
	if s.eventPublisher != nil {
		event := events.New(events.TypeUserLogin, map[string]interface{}{
			"user_id": user.Id,
			"time":    time.Now().Format(time.RFC822),
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("AuthService", "Failed to publish USER_LOGIN event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.LoginResponse{
		User:         toUserDTO(user),
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// ValidateSession resolves a token to its owner. Expiry is checked against
// the row itself, so validity never depends on the cleanup loop having run.
func (s *authService) ValidateSession(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, apperror.NewAuthentication("missing session token")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByToken{Token: token})
	if err != nil {
		return uuid.Nil, apperror.NewStorage("session lookup", err)
	}
	if session == nil {
		return uuid.Nil, apperror.NewAuthentication("unknown session token")
	}
	if !session.IsValid(time.Now()) {
		return uuid.Nil, apperror.NewAuthentication("session expired")
	}

	return session.UserId, nil
}

// Logout deletes the session row. Deleting an already-absent token succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().DeleteByToken(ctx, token); err != nil {
		return apperror.NewStorage("logout", err)
	}
	return nil
}

func (s *authService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	removed, err := uow.SessionRepository().DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, apperror.NewStorage("session cleanup", err)
	}
	return removed, nil
}

// StartSessionCleanup runs the expiry sweep on a ticker until ctx is done.
func (s *authService) StartSessionCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.CleanupExpiredSessions(ctx)
				if err != nil {
					s.logger.Warn("AuthService", "Session cleanup failed", map[string]interface{}{"error": err.Error()})
					continue
				}
				if removed > 0 {
					s.logger.Info("AuthService", "Session cleanup removed expired sessions", map[string]interface{}{"removed": removed})
				}
			}
		}
	}()
}

func toUserDTO(user *entity.User) dto.UserDTO {
	d := dto.UserDTO{
		Id:        user.Id,
		Email:     user.Email,
		IsPremium: user.IsPremium,
	}
	if user.DisplayName != nil {
		d.DisplayName = *user.DisplayName
	}
	if user.AvatarURL != nil {
		d.AvatarURL = *user.AvatarURL
	}
	return d
}
