package main

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/yourusername/quiz-api/internal/service"
)

//go:embed seed_quizzes.json
var seedQuizzesJSON []byte

func loadSeedQuizzes() ([]service.CreateQuizInput, error) {
	var quizzes []service.CreateQuizInput
	if err := json.Unmarshal(seedQuizzesJSON, &quizzes); err != nil {
		return nil, fmt.Errorf("invalid seed data: %w", err)
	}
	return quizzes, nil
}
