package public

import (
	"github.com/anta-store/anta-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha issues an image captcha challenge when the provider is on.
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
