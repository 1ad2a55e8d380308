package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"quizcraft/internal/cache"
	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (accessToken, refreshToken string, learner *domain.Learner, err error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	Logout(ctx context.Context, learnerID string) error
}

type authServiceImpl struct {
	learners     domain.LearnerRepository
	tokenCache   domain.Cache
	oauth2Config *oauth2.Config
	jwtConfig    config.JWTConfig
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(learners domain.LearnerRepository, tokenCache domain.Cache, cfg *config.Config) (AuthService, error) {
	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}

	return &authServiceImpl{
		learners:   learners,
		tokenCache: tokenCache,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleOAuth.ClientID,
			ClientSecret: cfg.GoogleOAuth.ClientSecret,
			RedirectURL:  cfg.GoogleOAuth.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		jwtConfig: cfg.JWT,
	}, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (string, string, *domain.Learner, error) {
	appLogger := logger.Get()
	if receivedState != expectedState {
		return "", "", nil, ErrInvalidAuthState
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return "", "", nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return "", "", nil, errors.New("google user info is incomplete")
	}

	learner, err := s.learners.GetByGoogleID(ctx, userInfo.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("error fetching learner by google_id: %w", err)
	}

	if learner == nil {
		learner = &domain.Learner{
			GoogleID: userInfo.ID,
			Email:    userInfo.Email,
			Name:     userInfo.Name,
		}
		if err := s.learners.Create(ctx, learner); err != nil {
			return "", "", nil, fmt.Errorf("failed to create learner: %w", err)
		}
		appLogger.Info("New learner created via Google OAuth",
			zap.String("learner_id", learner.ID), zap.String("email", learner.Email))
	} else {
		learner.Email = userInfo.Email
		learner.Name = userInfo.Name
		if err := s.learners.Update(ctx, learner); err != nil {
			return "", "", nil, fmt.Errorf("failed to update learner: %w", err)
		}
		appLogger.Info("Learner logged in via Google OAuth",
			zap.String("learner_id", learner.ID), zap.String("email", learner.Email))
	}

	return s.issueTokenPair(ctx, learner)
}

func (s *authServiceImpl) issueTokenPair(ctx context.Context, learner *domain.Learner) (string, string, *domain.Learner, error) {
	accessToken, err := s.createJWT(learner.ID, s.jwtConfig.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, err := s.createJWT(learner.ID, s.jwtConfig.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	// The active refresh token lives in redis so a rotation invalidates
	// the previous one.
	if s.tokenCache != nil {
		key := cache.RefreshTokenKey(learner.ID)
		if err := s.tokenCache.Set(ctx, key, refreshToken, s.jwtConfig.RefreshTokenTTL); err != nil {
			logger.Get().Warn("Failed to store refresh token",
				zap.String("learner_id", learner.ID), zap.Error(err))
		}
	}

	return accessToken, refreshToken, learner, nil
}

func (s *authServiceImpl) createJWT(learnerID string, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    learnerID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   learnerID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", "", errors.New("not a refresh token")
	}

	if s.tokenCache != nil {
		stored, err := s.tokenCache.Get(ctx, cache.RefreshTokenKey(claims.UserID))
		if err != nil || stored != refreshTokenString {
			return "", "", ErrInvalidJWTToken
		}
	}

	learner, err := s.learners.GetByID(ctx, claims.UserID)
	if err != nil || learner == nil {
		logger.Get().Error("Learner not found for refresh token",
			zap.String("learner_id", claims.UserID), zap.Error(err))
		return "", "", domain.NewNotFoundError(fmt.Sprintf("Learner %s not found for refresh token", claims.UserID))
	}

	newAccess, newRefresh, _, err := s.issueTokenPair(ctx, learner)
	if err != nil {
		return "", "", err
	}

	logger.Get().Info("JWT token refreshed", zap.String("learner_id", learner.ID))
	return newAccess, newRefresh, nil
}

// Logout drops the stored refresh token so it can no longer be exchanged.
// Issued access tokens stay valid until they expire.
func (s *authServiceImpl) Logout(ctx context.Context, learnerID string) error {
	if s.tokenCache == nil {
		return nil
	}
	if err := s.tokenCache.Delete(ctx, cache.RefreshTokenKey(learnerID)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	logger.Get().Info("Learner logged out", zap.String("learner_id", learnerID))
	return nil
}
