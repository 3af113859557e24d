package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/ctxutil"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/repos"
)

// RegisterInput is the local-account signup payload.
type RegisterInput struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	Language    string  `json:"language"`
}

// OAuthProfile is the normalized profile handed back by an OAuth provider
// callback.
type OAuthProfile struct {
	Provider       string            `json:"provider" binding:"required"`
	ProviderUserID string            `json:"provider_user_id" binding:"required"`
	Email          string            `json:"email" binding:"required,email"`
	DisplayName    *string           `json:"display_name"`
	Username       *string           `json:"username"`
	AvatarURL      *string           `json:"avatar_url"`
	AccessToken    *string           `json:"access_token"`
	RefreshToken   *string           `json:"refresh_token"`
	TokenExpiresAt *time.Time        `json:"token_expires_at"`
	Scopes         []string          `json:"scopes"`
	RawData        map[string]interface{} `json:"raw_data"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	UpsertOAuthUser(ctx context.Context, profile OAuthProfile) (*domain.User, string, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	oauthRepo repos.OAuthAccountRepo
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	oauthRepo repos.OAuthAccountRepo,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		db:        db,
		log:       log.With("service", "AuthService"),
		userRepo:  userRepo,
		oauthRepo: oauthRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, "", apierr.Validation("email is required")
	}
	if len(in.Password) < 8 {
		return nil, "", apierr.Validation("password must be at least 8 characters")
	}

	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, "", apierr.FromDB(err)
	}
	if exists {
		return nil, "", apierr.Conflict("email %q is already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("hash password: %w", err))
	}
	pw := string(hash)

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = emailLocalPart(email)
	}
	language := in.Language
	if language == "" {
		language = "en"
	}

	user := &domain.User{
		ID:          uuid.New(),
		Email:       email,
		Username:    username,
		Password:    &pw,
		DisplayName: in.DisplayName,
		Language:    language,
		IsActive:    true,
		Roles:       []string{"user"},
	}
	if err := s.userRepo.Create(ctx, nil, user); err != nil {
		return nil, "", apierr.FromDB(err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("registered user", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, "", apierr.FromDB(err)
	}
	if user == nil || user.Password == nil {
		return nil, "", apierr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return nil, "", apierr.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, "", apierr.Forbidden("account is disabled")
	}

	now := time.Now()
	if err := s.userRepo.UpdateFields(ctx, nil, user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		return nil, "", apierr.FromDB(err)
	}
	user.LastLoginAt = &now

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpsertOAuthUser links an external identity to a local user. An existing
// (provider, provider_user_id) pair refreshes tokens and profile fields; a
// new pair attaches to the user with the same email, creating one if needed.
func (s *authService) UpsertOAuthUser(ctx context.Context, profile OAuthProfile) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.Provider == "" || profile.ProviderUserID == "" || email == "" {
		return nil, "", apierr.Validation("provider, provider_user_id and email are required")
	}

	var user *domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acct, err := s.oauthRepo.GetByProviderUser(ctx, tx, profile.Provider, profile.ProviderUserID)
		if err != nil {
			return err
		}

		now := time.Now()
		if acct != nil {
			acct.ProviderEmail = &email
			acct.ProviderUsername = profile.Username
			acct.DisplayName = profile.DisplayName
			acct.AvatarURL = profile.AvatarURL
			acct.AccessToken = profile.AccessToken
			acct.RefreshToken = profile.RefreshToken
			acct.TokenExpiresAt = profile.TokenExpiresAt
			acct.Scopes = profile.Scopes
			acct.RawData = datatypes.JSONMap(profile.RawData)
			acct.LastUsedAt = now
			if err := s.oauthRepo.Update(ctx, tx, acct); err != nil {
				return err
			}
			user = acct.User
			if user == nil {
				user, err = s.userRepo.GetByID(ctx, tx, acct.UserID)
				if err != nil {
					return err
				}
			}
			if user == nil {
				return apierr.Internal(fmt.Errorf("oauth account %s has no user", acct.ID))
			}
			user.LastLoginAt = &now
			return s.userRepo.UpdateFields(ctx, tx, user.ID, map[string]interface{}{"last_login_at": now})
		}

		user, err = s.userRepo.GetByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if user == nil {
			user = &domain.User{
				ID:              uuid.New(),
				Email:           email,
				Username:        emailLocalPart(email),
				DisplayName:     profile.DisplayName,
				AvatarURL:       profile.AvatarURL,
				Language:        "en",
				IsActive:        true,
				IsEmailVerified: true,
				Roles:           []string{"user"},
				LastLoginAt:     &now,
			}
			if err := s.userRepo.Create(ctx, tx, user); err != nil {
				return err
			}
		} else {
			user.LastLoginAt = &now
			if err := s.userRepo.UpdateFields(ctx, tx, user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
				return err
			}
		}

		acct = &domain.OAuthAccount{
			ID:               uuid.New(),
			UserID:           user.ID,
			Provider:         profile.Provider,
			ProviderUserID:   profile.ProviderUserID,
			ProviderEmail:    &email,
			ProviderUsername: profile.Username,
			DisplayName:      profile.DisplayName,
			AvatarURL:        profile.AvatarURL,
			AccessToken:      profile.AccessToken,
			RefreshToken:     profile.RefreshToken,
			TokenExpiresAt:   profile.TokenExpiresAt,
			Scopes:           profile.Scopes,
			RawData:          datatypes.JSONMap(profile.RawData),
			LastUsedAt:       now,
		}
		return s.oauthRepo.Create(ctx, tx, acct)
	})
	if err != nil {
		return nil, "", apierr.FromDB(err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("oauth login", "provider", profile.Provider, "user_id", user.ID)
	return user, token, nil
}

func (s *authService) CurrentUser(ctx context.Context) (*domain.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthorized("missing authentication")
	}
	user, err := s.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if user == nil {
		return nil, apierr.NotFound("user %s not found", rd.UserID)
	}
	return user, nil
}

// SetContextFromToken validates a bearer token and loads its claims into the
// request context.
func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierr.Unauthorized("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ctx, apierr.Unauthorized("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, apierr.Unauthorized("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, apierr.Unauthorized("invalid subject claim")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Email:       email,
		Name:        name,
	}), nil
}

func (s *authService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.PublicName(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", apierr.Internal(fmt.Errorf("sign token: %w", err))
	}
	return signed, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
