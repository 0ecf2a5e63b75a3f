package request

type FranchiseAdminRequest struct {
	Email string `json:"email" validate:"required"`
}

type CreateFranchiseRequest struct {
	Name   string                  `json:"name" validate:"required,max=255"`
	Admins []FranchiseAdminRequest `json:"admins" validate:"dive"`
}

type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// FranchiseListRequest pages are zero-based; Name uses * as a wildcard
type FranchiseListRequest struct {
	Page  int
	Limit int
	Name  string
}
