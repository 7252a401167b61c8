package entity

import (
	"time"
)

// DefaultTimeLimitMinutes применяется, когда лимит времени не задан или не положителен
const DefaultTimeLimitMinutes = 10

// Quiz представляет викторину. Вопросы упорядочены по ID (порядок вставки).
type Quiz struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `gorm:"type:text;not null;default:''" json:"description"`
	TimeLimitMinutes int        `gorm:"not null;default:10" json:"time_limit_minutes"`
	CreatedBy        *uint      `gorm:"index" json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	Questions        []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// ApplyDefaults заполняет незаданные поля викторины и всего дерева вопросов
func (q *Quiz) ApplyDefaults() {
	if q.TimeLimitMinutes <= 0 {
		q.TimeLimitMinutes = DefaultTimeLimitMinutes
	}
	for i := range q.Questions {
		q.Questions[i].ApplyDefaults()
	}
}

// TotalPoints возвращает сумму баллов вопросов, у которых есть правильный вариант
func (q *Quiz) TotalPoints() int {
	total := 0
	for i := range q.Questions {
		if q.Questions[i].CorrectOption() != nil {
			total += q.Questions[i].Points
		}
	}
	return total
}
