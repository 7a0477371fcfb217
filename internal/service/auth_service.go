package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/repository"
	"github.com/Alkan41/yakit-takip-api/pkg/config"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

// AuthService authenticates admins against the credentials sheet and issues
// JWTs for the protected routes.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	ParseToken(tokenString string) (*models.Claims, error)
}

type authService struct {
	refs repository.ReferenceRepository
	cfg  config.JWTConfig
	log  *zap.Logger
}

// NewAuthService builds the sheet-backed auth service.
func NewAuthService(refs repository.ReferenceRepository, cfg config.JWTConfig, log *zap.Logger) AuthService {
	return &authService{refs: refs, cfg: cfg, log: log}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	admins, err := s.refs.ListAdmins(ctx)
	if err != nil {
		return models.LoginResponse{}, err
	}

	var admin *models.AdminUser
	for i := range admins {
		if admins[i].Username == req.Username {
			admin = &admins[i]
			break
		}
	}
	if admin == nil || !verifyPassword(admin.Password, req.Password) {
		s.log.Warn("failed admin login", zap.String("username", req.Username))
		return models.LoginResponse{}, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	claims := models.Claims{
		UserID:   admin.ID,
		Name:     admin.Name,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return models.LoginResponse{}, apperrors.Wrap(err, "TOKEN_SIGNING_FAILED", 500, "could not issue token")
	}

	return models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.cfg.Expiration.Seconds()),
		User:        models.AdminInfo{ID: admin.ID, Name: admin.Name, Username: admin.Username},
	}, nil
}

func (s *authService) ParseToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

// verifyPassword checks the stored credential. Hashed rows use bcrypt; rows
// predating hashing still hold plaintext and compare in constant time until
// they are rewritten.
func verifyPassword(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// HashPassword produces the bcrypt credential written to the admins sheet.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(err, "PASSWORD_HASHING_FAILED", 500, "could not hash password")
	}
	return string(hashed), nil
}
