package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
	"github.com/tanwartailor/tailor-api/internal/domain/repository"
	"github.com/tanwartailor/tailor-api/pkg/apperror"
	"github.com/tanwartailor/tailor-api/pkg/oauth"
	"github.com/tanwartailor/tailor-api/pkg/utils"
)

// AuthService handles authentication for the single admin account. There is
// no registration: the account is seeded at startup from configuration.
type AuthService struct {
	userRepo     repository.UserRepository
	jwtManager   *utils.JWTManager
	oauthService *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, oauthService *oauth.GoogleOAuthService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		oauthService: oauthService,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates the admin and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	return s.issueTokens(user)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// LoginWithGoogle completes the OAuth code exchange. Only the seeded admin
// email is allowed in; any other Google account is rejected.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*LoginOutput, error) {
	token, err := s.oauthService.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError("Failed to exchange authorization code")
	}

	info, err := s.oauthService.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.NewBadRequestError("Failed to fetch Google account info")
	}
	if !info.VerifiedEmail {
		return nil, apperror.NewAppError(http.StatusUnauthorized, "Google account email is not verified")
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
