package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
)

// Ключи контекста Gin для параметров пути результатов
const (
	UserIDKey       = "userID"
	ResultQuizIDKey = "resultQuizID"
)

// AttemptHandler принимает попытки и отдает результаты
type AttemptHandler struct {
	attemptService AttemptScoring
	quizService    QuizAuthoring
}

// NewAttemptHandler создает новый обработчик попыток
func NewAttemptHandler(attemptService AttemptScoring, quizService QuizAuthoring) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService, quizService: quizService}
}

// Submit оценивает и сохраняет попытку
// POST /api/attempts
func (h *AttemptHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgMissingSubmitFields})
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, "AttemptHandler", err, "Failed to submit quiz")
		return
	}

	c.JSON(http.StatusOK, dto.SubmitResponse{
		Message:     "Quiz submitted successfully",
		ResultID:    result.ID,
		Score:       result.Score,
		TotalPoints: result.TotalPoints,
	})
}

// GetUserResults возвращает историю попыток пользователя
// GET /api/attempts/user/:userId
func (h *AttemptHandler) GetUserResults(c *gin.Context) {
	userID := middleware.UintFromContext(c, UserIDKey)

	results, err := h.attemptService.ResultsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "AttemptHandler", err, "Failed to fetch results")
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResultsResponse(results))
}

// GetQuizResults возвращает таблицу результатов викторины
// GET /api/attempts/quiz/:quizId
func (h *AttemptHandler) GetQuizResults(c *gin.Context) {
	quizID := middleware.UintFromContext(c, ResultQuizIDKey)

	results, err := h.attemptService.ResultsByQuiz(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, "AttemptHandler", err, "Failed to fetch quiz results")
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResultsResponse(results))
}

// ExportQuizResults выгружает таблицу результатов в CSV или Excel
// GET /api/attempts/quiz/:quizId/export?format=csv|xlsx
func (h *AttemptHandler) ExportQuizResults(c *gin.Context) {
	quizID := middleware.UintFromContext(c, ResultQuizIDKey)
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format"})
		return
	}

	ctx := c.Request.Context()
	quiz, err := h.quizService.GetQuiz(ctx, quizID)
	if err != nil {
		respondError(c, "AttemptHandler", err, "Failed to export quiz results")
		return
	}
	results, err := h.attemptService.ResultsByQuiz(ctx, quizID)
	if err != nil {
		respondError(c, "AttemptHandler", err, "Failed to export quiz results")
		return
	}

	filename := fmt.Sprintf("quiz_%d_results_%s", quizID, time.Now().Format("2006-01-02"))
	rows := newExportRows(results)

	switch format {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
		if err := writeResultsXLSX(c.Writer, quiz.Title, rows); err != nil {
			log.Printf("[AttemptHandler] Ошибка выгрузки Excel для викторины #%d: %v", quizID, err)
		}
	default:
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
		if err := writeResultsCSV(c.Writer, rows); err != nil {
			log.Printf("[AttemptHandler] Ошибка выгрузки CSV для викторины #%d: %v", quizID, err)
		}
	}
}
