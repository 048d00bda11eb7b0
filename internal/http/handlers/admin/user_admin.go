package admin

import (
	"strconv"

	handlershared "github.com/anta-store/anta-api/internal/http/handlers/shared"
	"github.com/anta-store/anta-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers lists customer accounts.
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"users": users}, response.NewPagination(page, pageSize, total))
}
