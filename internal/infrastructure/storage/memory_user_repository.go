package storage

import (
	"context"
	"sync"

	"cv-filters/internal/domain/entity"
	"cv-filters/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей бота
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// Get возвращает копию пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	user, exists := r.users[userID]
	r.mu.RUnlock()

	if exists {
		cp := *user
		return &cp, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Пользователь мог появиться, пока лок был отпущен
	if user, exists := r.users[userID]; exists {
		cp := *user
		return &cp, nil
	}

	newUser := entity.NewUser(userID, chatID)
	r.users[userID] = newUser

	cp := *newUser
	return &cp, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	cp := *user

	r.mu.Lock()
	r.users[user.ID] = &cp
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние пользователя
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users[userID]; exists {
		user.SetState(state)
	}

	return nil
}

// BeginProcessing проверяет и меняет состояние под одной блокировкой
func (r *MemoryUserRepository) BeginProcessing(ctx context.Context, userID, chatID int64) (*entity.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[userID]
	if !exists {
		user = entity.NewUser(userID, chatID)
		r.users[userID] = user
	}
	started := user.BeginProcessing()

	cp := *user
	return &cp, started, nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
