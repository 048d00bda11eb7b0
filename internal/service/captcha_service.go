package service

import (
	"strings"

	"github.com/anta-store/anta-api/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaChallenge is an image captcha challenge for the login form.
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService issues and verifies image captchas. With the provider set
// to "none" every verification passes, which is the demo-mode default.
type CaptchaService struct {
	cfg    config.CaptchaConfig
	driver *base64Captcha.DriverDigit
	store  base64Captcha.Store
}

// NewCaptchaService creates a captcha service.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	length := cfg.Image.Length
	if length <= 0 {
		length = 5
	}
	width := cfg.Image.Width
	if width <= 0 {
		width = 240
	}
	height := cfg.Image.Height
	if height <= 0 {
		height = 80
	}
	maxStore := cfg.Image.MaxStore
	if maxStore <= 0 {
		maxStore = base64Captcha.GCLimitNumber
	}

	return &CaptchaService{
		cfg:    cfg,
		driver: base64Captcha.NewDriverDigit(height, width, length, 0.7, 80),
		store:  base64Captcha.NewMemoryStore(maxStore, base64Captcha.Expiration),
	}
}

// Enabled reports whether the captcha gate is on.
func (s *CaptchaService) Enabled() bool {
	return s != nil && strings.EqualFold(s.cfg.Provider, "image")
}

// RequiredForLogin reports whether login requires a captcha.
func (s *CaptchaService) RequiredForLogin() bool {
	return s.Enabled() && s.cfg.Scenes.Login
}

// GenerateChallenge creates a new image challenge.
func (s *CaptchaService) GenerateChallenge() (*CaptchaChallenge, error) {
	captcha := base64Captcha.NewCaptcha(s.driver, s.store)
	id, b64, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{CaptchaID: id, ImageBase64: b64}, nil
}

// VerifyLogin checks a login captcha answer. The answer is consumed on
// first use whether or not it matches.
func (s *CaptchaService) VerifyLogin(captchaID, code string) error {
	if !s.RequiredForLogin() {
		return nil
	}
	if strings.TrimSpace(captchaID) == "" || strings.TrimSpace(code) == "" {
		return ErrCaptchaRequired
	}
	if !s.store.Verify(captchaID, strings.TrimSpace(code), true) {
		return ErrCaptchaMismatch
	}
	return nil
}
