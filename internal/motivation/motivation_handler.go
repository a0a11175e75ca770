package motivation

import (
	"net/http"

	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	generator Generator
}

func NewHandler(generator Generator) *Handler {
	return &Handler{generator: generator}
}

type MessageResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Get tidak pernah gagal: bila asisten tidak tersedia, kalimat cadangan dikembalikan.
func (h *Handler) Get(c *gin.Context) {
	name := c.GetString("name")
	msg := h.generator.GenerateMessage(c.Request.Context(), name)
	response.Success(c, http.StatusOK, MessageResponse{Name: name, Message: msg}, nil)
}
