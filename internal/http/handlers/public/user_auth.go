package public

import (
	"errors"
	"time"

	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/i18n"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest is the storefront signup payload.
type UserRegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// UserLoginRequest is the storefront signin payload.
type UserLoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// SetLanguageRequest switches the customer's locale.
type SetLanguageRequest struct {
	Locale string `json:"locale" binding:"required"`
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"phone":        user.Phone,
		"locale":       user.Locale,
	}
}

// UserRegister creates a customer account.
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	user, err := h.UserAuthService.Register(service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Locale:      locale,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, response.CodeConflict, "error.email_taken", nil)
		case errors.Is(err, service.ErrWeakPassword):
			if perr, ok := err.(interface {
				Key() string
				Args() []interface{}
			}); ok {
				respondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, perr.Key(), perr.Args()...), nil)
				return
			}
			respondError(c, response.CodeBadRequest, "error.password_weak", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{"user": userView(user)})
}

// UserLogin signs a customer in.
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.login_failed", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       userView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// UserLogout ends the session. The pending order note draft is discarded
// so it cannot surface for the next account on a shared device.
func (h *Handler) UserLogout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	h.UserAuthService.Logout(uid)
	response.Success(c, gin.H{"logged_out": true})
}

// GetProfile returns the signed-in customer.
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.token_invalid"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"user": userView(user)})
}

// SetLanguage stores the customer's locale preference.
func (h *Handler) SetLanguage(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	locale, err := h.UserAuthService.SetLocale(uid, req.Locale)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.locale_invalid"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"locale": locale})
}
