package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/repository"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
)

// Claims are the JWT claims issued to a logged-in user. Subject is the user id.
type Claims struct {
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	store     repository.Store
	jwtSecret []byte
	logger    *logrus.Logger
}

func NewAuthService(store repository.Store, jwtSecret string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// GenerateToken signs a token for p that expires after ttl.
func (s *AuthService) GenerateToken(p domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		CompanyID: p.CompanyID.String(),
		Role:      p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken validates a bearer token and returns the caller it identifies.
func (s *AuthService) ParseToken(tokenString string) (*domain.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		s.logger.WithError(err).Warn("Invalid JWT token")
		return nil, customError.WrapInvalidToken(err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, customError.WrapInvalidToken(fmt.Errorf("subject: %w", err))
	}
	companyID, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		return nil, customError.WrapInvalidToken(fmt.Errorf("company_id: %w", err))
	}

	return &domain.Principal{
		UserID:    userID,
		CompanyID: companyID,
		Role:      claims.Role,
	}, nil
}

// VerifyPassword re-authenticates a user before a destructive action.
func (s *AuthService) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.store.Repos().Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapUserNotFound(userID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("user_id", userID).Warn("Password verification failed")
		return customError.WrapInvalidPassword()
	}

	return nil
}
