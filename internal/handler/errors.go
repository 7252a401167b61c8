package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// respondError переводит ошибку сервиса в HTTP ответ.
// Для клиентских ошибок отдается их сообщение, иначе fallback; причина 500 пишется в лог.
func respondError(c *gin.Context, component string, err error, fallback string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		log.Printf("[%s] %s (request %s): %v", component, fallback, middleware.GetRequestID(c), err)
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	msg, ok := apperrors.ClientMessage(err)
	if !ok {
		msg = fallback
	}
	c.JSON(status, gin.H{"error": msg})
}
