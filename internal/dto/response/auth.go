package response

import (
	"pizza-service/internal/data/entity"
)

// UserResponse is the sanitized user view; the password hash never leaves the service
type UserResponse struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Roles entity.RoleSet `json:"roles"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: user.Roles,
	}
}

func AuthToResponse(user *entity.User, token string) *AuthResponse {
	return &AuthResponse{
		User:  UserToResponse(user),
		Token: token,
	}
}
