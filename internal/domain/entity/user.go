package entity

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Роли пользователей
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User представляет пользователя системы
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'student'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// NormalizeRole приводит произвольную роль к допустимой: только точное "admin" остается
// админом, все остальное (включая пустое значение) становится студентом.
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleStudent
}

// IsAdmin сообщает, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SetPassword хеширует пароль bcrypt и сохраняет хеш
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password for %s: %w", u.Username, err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword проверяет пароль против хеша (сравнение за постоянное время)
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
