// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/platewise/platewise/internal/model"
)

// RegisterRequest represents the request body for registering an account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token and the authenticated identity.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents a user in API responses. The credential hash is
// never serialized.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse represents a list of users.
type UserListResponse struct {
	Data []UserResponse `json:"data"`
}

// UpdateRoleRequest represents the request body for changing a user role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// ToActorResponse converts an authenticated actor to UserResponse DTO.
func ToActorResponse(actor model.Actor) *UserResponse {
	return &UserResponse{
		ID:    actor.ID,
		Email: actor.Email,
		Role:  string(actor.Role),
	}
}

// ToUserListResponse converts a slice of User models to UserListResponse.
func ToUserListResponse(users []*model.User) *UserListResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = *ToUserResponse(user)
	}
	return &UserListResponse{Data: responses}
}
