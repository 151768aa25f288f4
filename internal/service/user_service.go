package service

import (
	"context"
	"fmt"

	"backoffice/internal/repository"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

// UserService lists staff for manager assignment.
type UserService interface {
	GetUsers(ctx context.Context, role string, page, limit int) ([]UserResponse, int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUsers(ctx context.Context, role string, page, limit int) ([]UserResponse, int64, error) {
	page, limit = normalizePaging(page, limit)
	users, total, err := s.userRepo.List(ctx, role, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	res := make([]UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
	}
	return res, total, nil
}
