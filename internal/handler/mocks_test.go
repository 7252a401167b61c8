package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Register(ctx context.Context, username, password, role string) (*entity.User, error) {
	args := m.Called(ctx, username, password, role)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (*entity.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type MockQuizAuthoring struct {
	mock.Mock
}

func (m *MockQuizAuthoring) CreateQuiz(ctx context.Context, in service.CreateQuizInput) (*entity.Quiz, error) {
	args := m.Called(ctx, in)
	quiz, _ := args.Get(0).(*entity.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizAuthoring) ReplaceQuiz(ctx context.Context, id uint, in service.ReplaceQuizInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockQuizAuthoring) GetQuiz(ctx context.Context, id uint) (*entity.Quiz, error) {
	args := m.Called(ctx, id)
	quiz, _ := args.Get(0).(*entity.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizAuthoring) ListQuizzes(ctx context.Context) ([]entity.Quiz, error) {
	args := m.Called(ctx)
	quizzes, _ := args.Get(0).([]entity.Quiz)
	return quizzes, args.Error(1)
}

func (m *MockQuizAuthoring) DeleteQuiz(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockAttemptScoring struct {
	mock.Mock
}

func (m *MockAttemptScoring) Submit(ctx context.Context, in service.SubmitInput) (*entity.Result, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*entity.Result)
	return result, args.Error(1)
}

func (m *MockAttemptScoring) ResultsByUser(ctx context.Context, userID uint) ([]entity.UserResult, error) {
	args := m.Called(ctx, userID)
	results, _ := args.Get(0).([]entity.UserResult)
	return results, args.Error(1)
}

func (m *MockAttemptScoring) ResultsByQuiz(ctx context.Context, quizID uint) ([]entity.QuizResult, error) {
	args := m.Called(ctx, quizID)
	results, _ := args.Get(0).([]entity.QuizResult)
	return results, args.Error(1)
}
