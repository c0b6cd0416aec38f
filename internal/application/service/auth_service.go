package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/internal/domain/repository"
	"github.com/sergiuconi/casier-api/pkg/apperror"
	"github.com/sergiuconi/casier-api/pkg/utils"
)

// AuthService handles operator authentication
type AuthService struct {
	operatorRepo repository.OperatorRepository
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(operatorRepo repository.OperatorRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		operatorRepo: operatorRepo,
		jwtManager:   jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Operator     *entity.Operator
	AccessToken  string
	RefreshToken string
}

// Login authenticates an operator and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	operator, err := s.operatorRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if operator == nil || !operator.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, operator.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(operator)
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	operatorID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	operator, err := s.operatorRepo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil || !operator.Active {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(operator)
}

func (s *AuthService) issueTokens(operator *entity.Operator) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(operator.ID, operator.Username, operator.Role, operator.Casa)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(operator.ID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		Operator:     operator,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetCurrentOperator returns the authenticated operator by ID
func (s *AuthService) GetCurrentOperator(ctx context.Context, operatorID uuid.UUID) (*entity.Operator, error) {
	operator, err := s.operatorRepo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, apperror.ErrNotFound
	}
	return operator, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	OperatorID      uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the operator's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	operator, err := s.operatorRepo.GetByID(ctx, input.OperatorID)
	if err != nil {
		return err
	}
	if operator == nil {
		return apperror.ErrNotFound
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, operator.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	operator.Password = hashedPassword
	return s.operatorRepo.Update(ctx, operator)
}
