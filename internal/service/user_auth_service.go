package service

import (
	"strings"
	"time"

	"github.com/anta-store/anta-api/internal/config"
	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/i18n"
	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the storefront signup form.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
	Locale      string
}

// UserAuthService authenticates storefront customers. Logout clears the
// session's pending order note so it cannot leak into the next login on a
// shared device.
type UserAuthService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	noteService *OrderNoteService
}

// NewUserAuthService creates a customer auth service.
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, noteService *OrderNoteService) *UserAuthService {
	return &UserAuthService{cfg: cfg, userRepo: userRepo, noteService: noteService}
}

// UserJWTClaims are the customer token claims.
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register creates a customer account.
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	phone := ""
	if strings.TrimSpace(input.Phone) != "" {
		normalized, ok := NormalizeJordanMobile(input.Phone)
		if !ok {
			return nil, ErrInvalidInput
		}
		phone = normalized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Phone:        phone,
		Locale:       i18n.Normalize(input.Locale),
		Status:       "active",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Infow("user_registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates a customer and issues a token. rememberMe stretches
// the token lifetime.
func (s *UserAuthService) Login(email, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if user.Status != "active" {
		return nil, "", time.Time{}, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user, rememberMe)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.userRepo.TouchLogin(user.ID); err != nil {
		logger.Warnw("user_login_touch_failed", "user_id", user.ID, "error", err)
	}

	logger.Infow("user_login", "user_id", user.ID)
	return user, token, expiresAt, nil
}

// Logout ends the session server-side: the pending order note is cleared
// immediately.
func (s *UserAuthService) Logout(userID uint) {
	if userID == 0 {
		return
	}
	if s.noteService != nil {
		s.noteService.ClearNote(userID)
	}
	logger.Infow("user_logout", "user_id", userID)
}

// GenerateJWT issues a customer token.
func (s *UserAuthService) GenerateJWT(user *models.User, rememberMe bool) (string, time.Time, error) {
	hours := s.cfg.UserJWT.ExpireHours
	if rememberMe && s.cfg.UserJWT.RememberMeExpireHours > 0 {
		hours = s.cfg.UserJWT.RememberMeExpireHours
	}
	if hours <= 0 {
		hours = 24
	}
	expiresAt := time.Now().Add(time.Duration(hours) * time.Hour)

	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates and decodes a customer token.
func (s *UserAuthService) ParseJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &UserJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidCredentials
}

// GetProfile returns the customer's account.
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SetLocale stores the customer's language preference.
func (s *UserAuthService) SetLocale(userID uint, locale string) (string, error) {
	if userID == 0 {
		return "", ErrInvalidInput
	}
	normalized := i18n.Normalize(locale)
	if normalized != constants.LocaleArabic && normalized != constants.LocaleEnglish {
		return "", ErrInvalidInput
	}
	if err := s.userRepo.Update(userID, map[string]interface{}{"locale": normalized}); err != nil {
		return "", err
	}
	return normalized, nil
}
