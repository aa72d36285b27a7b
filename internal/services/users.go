package services

import (
	"context"
	"errors"

	"github.com/aymanElshayeb/reactExampleBackend/internal/models"
	"github.com/aymanElshayeb/reactExampleBackend/internal/repositories"
)

// ErrUserNotFound is returned when an operation references a user that does
// not exist in storage.
var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	AddUser(ctx context.Context, user models.User) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetTasksOfUser(ctx context.Context, userID uint) ([]models.Task, error)
}

type UserServiceImpl struct {
	users repositories.UserRepository
	tasks repositories.TaskRepository
}

func NewUserService(users repositories.UserRepository, tasks repositories.TaskRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users, tasks: tasks}
}

// AddUser persists a new user. Username uniqueness is not checked at this
// layer; storage assigns the id.
func (s *UserServiceImpl) AddUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = 0
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetTasksOfUser resolves the user first: a missing user yields
// ErrUserNotFound, while an existing user with no tasks yields an empty
// slice. The two outcomes are distinct contracts.
func (s *UserServiceImpl) GetTasksOfUser(ctx context.Context, userID uint) ([]models.Task, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tasks, err := s.tasks.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}
