package service

import (
	"context"

	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/repository"
	"github.com/yasserh/sultan-pos/pkg/apperror"
	"github.com/yasserh/sultan-pos/pkg/utils"
)

// AuthService handles cashier authentication for POS terminals.
type AuthService struct {
	cashierRepo repository.CashierRepository
	jwtManager  *utils.JWTManager
}

// NewAuthService creates a new auth service.
func NewAuthService(cashierRepo repository.CashierRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		cashierRepo: cashierRepo,
		jwtManager:  jwtManager,
	}
}

// TokenPair holds the issued access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates a cashier by username and password and issues a
// token pair. Unknown usernames and wrong passwords are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.Cashier, *TokenPair, error) {
	cashier, err := s.cashierRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if cashier == nil || !cashier.CheckPassword(password) {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(cashier)
	if err != nil {
		return nil, nil, err
	}
	return cashier, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.Cashier, *TokenPair, error) {
	cashierID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, apperror.ErrInvalidToken
	}

	cashier, err := s.cashierRepo.GetByID(ctx, cashierID)
	if err != nil {
		return nil, nil, err
	}
	if cashier == nil {
		return nil, nil, apperror.ErrInvalidToken
	}

	pair, err := s.issueTokens(cashier)
	if err != nil {
		return nil, nil, err
	}
	return cashier, pair, nil
}

func (s *AuthService) issueTokens(cashier *entity.Cashier) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(cashier.ID, cashier.Name, cashier.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(cashier.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
