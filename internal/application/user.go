package app

import (
	"context"

	"cv-filters/internal/domain/entity"
	"cv-filters/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) AwaitPhoto(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SelectFilter запоминает выбранный фильтр и ждёт фото
func (s *UserService) SelectFilter(ctx context.Context, userID, chatID int64, filter entity.FilterName) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SelectFilter(filter)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BeginProcessing занимает пользователя на время обработки изображения
func (s *UserService) BeginProcessing(ctx context.Context, userID, chatID int64) (*entity.User, bool, error) {
	return s.repo.BeginProcessing(ctx, userID, chatID)
}

// FinishProcessing возвращает пользователя в ожидание фото
func (s *UserService) FinishProcessing(ctx context.Context, userID int64) error {
	return s.repo.UpdateState(ctx, userID, entity.StateAwaitingPhoto)
}
