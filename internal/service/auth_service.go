package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

const (
	// bcrypt не принимает пароли длиннее 72 байт
	maxPasswordBytes = 72

	// Размер колонки users.username в символах
	maxUsernameLength = 255
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeTiming выполняет сравнение с фиктивным хешем, чтобы ответ для
// несуществующего пользователя занимал столько же времени, сколько для существующего
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("quiz-api-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// AuthService предоставляет регистрацию и вход пользователей
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register регистрирует пользователя. Роль "admin" сохраняется, любая другая становится "student".
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, apperrors.Validation("Username must be at most %d characters", maxUsernameLength)
	}
	if len(password) > maxPasswordBytes {
		return nil, apperrors.Validation("Password must be at most %d bytes", maxPasswordBytes)
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict("Username already exists")
	}

	user := &entity.User{
		Username: username,
		Role:     entity.NormalizeRole(role),
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	// Уникальный индекс закрывает гонку между проверкой и вставкой
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь #%d '%s' (роль: %s)", user.ID, user.Username, user.Role)
	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			equalizeTiming(password)
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неудачная попытка входа для '%s'", username)
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return user, nil
}

// EnsureAdmin создает учетную запись администратора, если пользователя с таким именем еще нет.
// Возвращает true, если запись была создана.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := s.Register(ctx, username, password, entity.RoleAdmin); err != nil {
		// Параллельный старт другого экземпляра мог успеть создать запись
		if errors.Is(err, apperrors.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}
	log.Printf("[AuthService] Создана учетная запись администратора '%s'", username)
	return true, nil
}

// AdminID возвращает ID администратора с указанным именем
func (s *AuthService) AdminID(ctx context.Context, username string) (uint, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to load admin '%s': %w", username, err)
	}
	if !user.IsAdmin() {
		return 0, fmt.Errorf("user '%s' is not an admin", username)
	}
	return user.ID, nil
}
