package service

import (
	"context"
	"time"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/pkg/logger"
	"tria-ai-be/internal/repository/specification"
	"tria-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	GetUserByEmail(ctx context.Context, email string) (*dto.ProfileResponse, error)
	GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.NewStorage("profile lookup", err)
	}
	if user == nil {
		return nil, apperror.NewNotFound("user", userId.String())
	}
	return toProfileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	fields := map[string]interface{}{}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Timezone != nil {
		fields["timezone"] = *req.Timezone
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}
	if len(fields) == 0 {
		return nil
	}

	// Field update and activity append land together or not at all.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.NewStorage("profile update begin", err)
	}
	defer uow.Rollback()

	affected, err := uow.UserRepository().UpdateFields(ctx, userId, fields)
	if err != nil {
		return apperror.NewStorage("profile update", err)
	}
	if affected == 0 {
		return apperror.NewNotFound("user", userId.String())
	}

	if err := uow.ActivityRepository().Append(ctx, &entity.ActivityLog{
		Id:           uuid.New(),
		UserId:       userId,
		Action:       constant.ActivityUserUpdated,
		ResourceType: "user",
		ResourceId:   &userId,
		CreatedAt:    time.Now(),
	}); err != nil {
		return apperror.NewStorage("profile update activity", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.NewStorage("profile update commit", err)
	}
	return nil
}

// GetUserByEmail returns nil without error when no such user exists, so
// lookups degrade to "absent" instead of surfacing a failure.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		s.logger.Warn("UserService", "Lookup by email failed, degrading to absent", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}
	if user == nil {
		return nil, nil
	}
	return toProfileResponse(user), nil
}

func (s *userService) GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prefs, err := uow.UserRepository().FindPreferences(ctx, userId)
	if err != nil {
		return nil, apperror.NewStorage("preferences lookup", err)
	}
	if prefs == nil {
		// Registration provisions a row, but degrade gracefully for older accounts.
		return &dto.PreferencesResponse{Theme: "system", Settings: map[string]interface{}{}}, nil
	}
	return &dto.PreferencesResponse{Theme: prefs.Theme, Settings: prefs.Settings}, nil
}

func (s *userService) UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prefs, err := uow.UserRepository().FindPreferences(ctx, userId)
	if err != nil {
		return nil, apperror.NewStorage("preferences lookup", err)
	}

	if prefs == nil {
		prefs = &entity.UserPreferences{
			Id:        uuid.New(),
			UserId:    userId,
			Theme:     "system",
			Settings:  map[string]interface{}{},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if req.Theme != nil {
			prefs.Theme = *req.Theme
		}
		if req.Settings != nil {
			prefs.Settings = req.Settings
		}
		if err := uow.UserRepository().CreatePreferences(ctx, prefs); err != nil {
			return nil, apperror.NewStorage("preferences create", err)
		}
		return &dto.PreferencesResponse{Theme: prefs.Theme, Settings: prefs.Settings}, nil
	}

	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.Settings != nil {
		prefs.Settings = req.Settings
	}
	prefs.UpdatedAt = time.Now()

	if err := uow.UserRepository().UpdatePreferences(ctx, prefs); err != nil {
		return nil, apperror.NewStorage("preferences update", err)
	}
	return &dto.PreferencesResponse{Theme: prefs.Theme, Settings: prefs.Settings}, nil
}

func toProfileResponse(user *entity.User) *dto.ProfileResponse {
	res := &dto.ProfileResponse{
		Id:            user.Id,
		Email:         user.Email,
		Timezone:      user.Timezone,
		Language:      user.Language,
		EmailVerified: user.EmailVerified,
		IsPremium:     user.IsPremium,
		LoginCount:    user.LoginCount,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
	}
	if user.DisplayName != nil {
		res.DisplayName = *user.DisplayName
	}
	if user.AvatarURL != nil {
		res.AvatarURL = *user.AvatarURL
	}
	if user.Bio != nil {
		res.Bio = *user.Bio
	}
	if user.Location != nil {
		res.Location = *user.Location
	}
	return res
}
