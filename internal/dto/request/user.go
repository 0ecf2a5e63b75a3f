package request

// UpdateUserRequest changes only the fields that are present
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1"`
}

type GrantRoleRequest struct {
	Role     string `json:"role" validate:"required,oneof=diner franchisee store_admin admin"`
	ObjectID int64  `json:"objectId" validate:"gte=0"`
}
