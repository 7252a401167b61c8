package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/websocket"
)

// LiveHandler подключает клиентов к live-ленте результатов викторины
type LiveHandler struct {
	hub          *websocket.Hub
	quizService  QuizAuthoring
	clientConfig websocket.ClientConfig
	upgrader     gorillaws.Upgrader
}

// NewLiveHandler создает обработчик live-ленты. Пустой allowedOrigins или "*" разрешает любой Origin.
func NewLiveHandler(hub *websocket.Hub, quizService QuizAuthoring, clientConfig websocket.ClientConfig, allowedOrigins []string) *LiveHandler {
	h := &LiveHandler{hub: hub, quizService: quizService, clientConfig: clientConfig}
	h.upgrader = gorillaws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// Не браузерный клиент
		if origin == "" {
			return true
		}
		if len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		log.Printf("[LiveHandler] Отклонен Origin: %s", origin)
		return false
	}
}

// Subscribe переводит соединение на WebSocket и подписывает его на результаты викторины
// GET /api/attempts/quiz/:quizId/live
func (h *LiveHandler) Subscribe(c *gin.Context) {
	quizID := middleware.UintFromContext(c, ResultQuizIDKey)

	if _, err := h.quizService.GetQuiz(c.Request.Context(), quizID); err != nil {
		respondError(c, "LiveHandler", err, "Failed to subscribe to quiz results")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		log.Printf("[LiveHandler] Ошибка upgrade для викторины #%d: %v", quizID, err)
		return
	}

	websocket.NewClient(h.hub, conn, quizID, h.clientConfig).Serve()
}
