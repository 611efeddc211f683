package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-api/internal/domain"
	"user-api/internal/repository"
)

// ErrInvalidBirthday indicates the birthday value could not be parsed as a date.
var ErrInvalidBirthday = errors.New("invalid birthday format")

const birthdayLayout = "2006-01-02"

// UserInput carries validated user fields accepted from a client. Birthday is
// still the raw string; parsing it is this service's job.
type UserInput struct {
	Email    string
	Name     string
	Age      int
	Sex      domain.Sex
	Birthday string
	Phone    string
}

// UserService describes user lifecycle operations.
type UserService interface {
	CreateUser(ctx context.Context, input UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User, input UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	birthday, err := parseBirthday(input.Birthday)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:     input.Email,
		Name:      input.Name,
		Age:       input.Age,
		Sex:       input.Sex,
		Birthday:  birthday,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, user *domain.User, input UserInput) (*domain.User, error) {
	birthday, err := parseBirthday(input.Birthday)
	if err != nil {
		return nil, err
	}

	user.Email = input.Email
	user.Name = input.Name
	user.Age = input.Age
	user.Sex = input.Sex
	user.Birthday = birthday
	user.Phone = input.Phone
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, user *domain.User) error {
	return s.users.Delete(ctx, user.ID)
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func parseBirthday(value string) (time.Time, error) {
	birthday, err := time.Parse(birthdayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, value)
	}
	return birthday, nil
}
