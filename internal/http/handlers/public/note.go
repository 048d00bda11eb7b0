package public

import (
	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// OrderNoteRequest carries the draft note text.
type OrderNoteRequest struct {
	Note string `json:"note"`
}

// GetOrderNote returns the pending order note draft.
func (h *Handler) GetOrderNote(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"note":    h.OrderNoteService.GetNote(uid),
		"max_len": constants.OrderNoteMaxLen,
	})
}

// PutOrderNote stores a note edit. Writes are debounced server-side, so
// clients may call this on every keystroke; the response echoes the note
// as kept, truncated to the length cap.
func (h *Handler) PutOrderNote(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req OrderNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	saved := h.OrderNoteService.SetNote(uid, req.Note)
	response.Success(c, gin.H{
		"note":      saved,
		"truncated": len([]rune(req.Note)) > constants.OrderNoteMaxLen,
	})
}

// DeleteOrderNote clears the draft immediately, bypassing the debounce.
func (h *Handler) DeleteOrderNote(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	h.OrderNoteService.ClearNote(uid)
	response.Success(c, gin.H{"cleared": true})
}
