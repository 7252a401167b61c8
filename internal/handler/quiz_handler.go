package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuizIDKey — ключ контекста Gin с ID викторины из пути
const QuizIDKey = "quizID"

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService QuizAuthoring
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService QuizAuthoring) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// ListQuizzes возвращает все викторины, новые первыми
// GET /api/quizzes
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes(c.Request.Context())
	if err != nil {
		respondError(c, "QuizHandler", err, "Failed to fetch quizzes")
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizListResponse(quizzes))
}

// GetQuiz возвращает викторину с вопросами и вариантами
// GET /api/quizzes/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := middleware.UintFromContext(c, QuizIDKey)

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, "QuizHandler", err, "Failed to fetch quiz details")
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// CreateQuiz создает викторину вместе с вопросами
// POST /api/quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgInvalidQuizInput})
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, "QuizHandler", err, "Failed to create quiz")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateQuizResponse{Message: "Quiz created successfully", QuizID: quiz.ID})
}

// UpdateQuiz заменяет метаданные викторины и, если переданы, ее вопросы
// PUT /api/quizzes/:id
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID := middleware.UintFromContext(c, QuizIDKey)

	var req dto.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgTitleRequired})
		return
	}

	if err := h.quizService.ReplaceQuiz(c.Request.Context(), quizID, req.ToInput()); err != nil {
		respondError(c, "QuizHandler", err, "Failed to update quiz")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz updated successfully"})
}

// DeleteQuiz удаляет викторину каскадно
// DELETE /api/quizzes/:id
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := middleware.UintFromContext(c, QuizIDKey)

	if err := h.quizService.DeleteQuiz(c.Request.Context(), quizID); err != nil {
		respondError(c, "QuizHandler", err, "Failed to delete quiz")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}
