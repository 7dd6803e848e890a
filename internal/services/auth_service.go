package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"rentflow/internal/apperr"
	"rentflow/internal/authz"
	"rentflow/internal/middleware"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	users  repositories.UserRepository
	secret []byte
	logger *zap.Logger
}

func NewAuthService(users repositories.UserRepository, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, secret: []byte(jwtSecret), logger: logger}
}

func (s *AuthService) Register(in models.RegisterRequest) (*models.User, error) {
	existing, err := s.users.GetByEmail(in.Email)
	if err != nil {
		s.logger.Error("register lookup failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validationf("email", "already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	orgID := in.OrganizationID
	if orgID == "" {
		orgID = models.DefaultOrganizationID
	}
	user := &models.User{
		Email:          in.Email,
		Name:           in.Name,
		PasswordHash:   string(hash),
		RoleID:         authz.RoleManager,
		OrganizationID: orgID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("user registered", zap.String("email", user.Email))
	return user, nil
}

// Login checks credentials and mints a signed bearer token. Invalid email
// and invalid password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		s.logger.Error("login lookup failed", zap.Error(err))
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperr.Validationf("credentials", "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Validationf("credentials", "invalid email or password")
	}

	claims := &middleware.Claims{
		UserID:         user.ID,
		RoleID:         user.RoleID,
		OrganizationID: user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	s.logger.Info("user logged in", zap.String("email", user.Email))
	return signed, user, nil
}
