package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/repository/specification"
	"tria-ai-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	googleConf *oauth2.Config
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		googleConf: conf,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

type googleIdentity struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// identityFromIDToken decodes the claims of the id_token bundled with the
// exchange response. The token arrived over TLS directly from Google, so
// claims are read without signature verification; the userinfo endpoint
// remains the fallback when no id_token is present.
func identityFromIDToken(token *oauth2.Token) (*googleIdentity, bool) {
	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, false
	}

	identity := &googleIdentity{}
	if sub, ok := claims["sub"].(string); ok {
		identity.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		identity.VerifiedEmail = verified
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := claims["picture"].(string); ok {
		identity.Picture = picture
	}

	if identity.ID == "" || identity.Email == "" {
		return nil, false
	}
	return identity, true
}

func fetchUserInfo(accessToken string) (*googleIdentity, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %v", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %v", err)
	}

	var identity googleIdentity
	if err := json.Unmarshal(content, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.NewExternalService("google", fmt.Errorf("code exchange failed: %v", err))
	}

	identity, ok := identityFromIDToken(token)
	if !ok {
		identity, err = fetchUserInfo(token.AccessToken)
		if err != nil {
			return nil, apperror.NewExternalService("google", err)
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: identity.Email})
	if err != nil {
		return nil, apperror.NewStorage("oauth lookup", err)
	}

	if user == nil {
		log.Printf("[OAuth Service] User not found. Creating new user for %s", identity.Email)

		var displayName *string
		if identity.Name != "" {
			displayName = &identity.Name
		}
		var avatarURL *string
		if identity.Picture != "" {
			avatarURL = &identity.Picture
		}

		newUser := &entity.User{
			Id:            uuid.New(),
			Email:         identity.Email,
			PasswordHash:  nil,
			DisplayName:   displayName,
			AvatarURL:     avatarURL,
			Timezone:      "UTC",
			Language:      "en",
			EmailVerified: identity.VerifiedEmail,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, apperror.NewStorage("oauth begin", err)
		}

		if err := uow.UserRepository().Create(ctx, newUser); err != nil {
			uow.Rollback()
			return nil, apperror.NewStorage("oauth create user", err)
		}

		prefs := &entity.UserPreferences{
			Id:        uuid.New(),
			UserId:    newUser.Id,
			Theme:     "system",
			Settings:  map[string]interface{}{},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := uow.UserRepository().CreatePreferences(ctx, prefs); err != nil {
			uow.Rollback()
			return nil, apperror.NewStorage("oauth create preferences", err)
		}

		if err := uow.Commit(); err != nil {
			return nil, apperror.NewStorage("oauth commit", err)
		}

		user = newUser
	}

	// Sync provider link and avatar on every login.
	userProvider := &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   "google",
		ProviderUserId: identity.ID,
		AvatarURL:      identity.Picture,
		CreatedAt:      time.Now(),
	}
	if err := uow.UserRepository().SaveProvider(ctx, userProvider); err != nil {
		return nil, apperror.NewStorage("oauth save provider", err)
	}

	session := &entity.UserSession{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     "",
		ExpiresAt: time.Now().Add(SessionTTL),
		CreatedAt: time.Now(),
	}
	session.Token, err = generateSessionToken()
	if err != nil {
		return nil, err
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, apperror.NewStorage("oauth session", err)
	}

	if err := uow.UserRepository().RecordLogin(ctx, user.Id); err != nil {
		log.Printf("[OAuth Service] WARN - Failed to record login: %v", err)
	}

	return &dto.LoginResponse{
		User:         toUserDTO(user),
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}
