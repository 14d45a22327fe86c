package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yururi-apps/schedule-coordination-backend/config"
	"github.com/yururi-apps/schedule-coordination-backend/internal/notification"
	"github.com/yururi-apps/schedule-coordination-backend/utils"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Register(input RegisterInput) (*User, error)
	Login(input LoginInput) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	Logout(refreshToken string) error
	GetUserByID(userID string) (*User, error)

	// Password reset methods
	RequestPasswordReset(email string) error
	ResetPassword(token string, newPassword string) error
}

type service struct {
	repo          Repository
	notifSvc      notification.Service
	frontendURL   string
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config, notifSvc notification.Service) Service {
	accessTTL := time.Duration(cfg.JWTAccessTTLHours) * time.Hour
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	refreshTTL := time.Duration(cfg.JWTRefreshTTLHours) * time.Hour
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &service{
		repo:          r,
		notifSvc:      notifSvc,
		frontendURL:   cfg.FrontendURL,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

func (s *service) Register(in RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if existing, err := s.repo.FindByEmail(email); err == nil && existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("couldn't find your account")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, user, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	// Logged-out tokens sit on a redis denylist until they expire anyway
	if _, err := utils.GetToken(revokedKey(refreshToken)); err == nil {
		return "", errors.New("invalid refresh token")
	}

	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return s.generateAccessToken(user)
}

// =============================
// Logout
// =============================

func (s *service) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return utils.SetToken(revokedKey(refreshToken), "1", s.refreshTTL)
}

func revokedKey(refreshToken string) string {
	return fmt.Sprintf("revoked_refresh:%s", refreshToken)
}

// =============================
// Forgot Password
// =============================

func (s *service) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return errors.New("user not found")
	}

	resetToken := generateSecureToken()
	key := fmt.Sprintf("reset_token:%s", resetToken)

	if err := utils.SetToken(key, user.ID, 15*time.Minute); err != nil {
		return errors.New("could not save reset token")
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, resetToken)
	if err := s.notifSvc.SendPasswordReset(context.Background(), user.Email, resetURL); err != nil {
		return errors.New("failed to send email")
	}

	return nil
}

func (s *service) ResetPassword(token string, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	userID, err := utils.GetToken(key)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.Update(user); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key) // Cleanup token

	return nil
}

// =============================
// Get User By ID
// =============================

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.FindByID(userID)
}

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
