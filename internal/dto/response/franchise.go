package response

import "pizza-service/internal/data/entity"

type FranchiseAdminResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type StoreResponse struct {
	ID          int64  `json:"id"`
	FranchiseID int64  `json:"franchiseId,omitempty"`
	Name        string `json:"name"`
}

type FranchiseResponse struct {
	ID     int64                    `json:"id"`
	Name   string                   `json:"name"`
	Admins []FranchiseAdminResponse `json:"admins,omitempty"`
	Stores []StoreResponse          `json:"stores"`
}

type FranchiseListResponse struct {
	Franchises []FranchiseResponse `json:"franchises"`
	More       bool                `json:"more"`
}

func StoreToResponse(store *entity.Store) StoreResponse {
	return StoreResponse{
		ID:          store.ID,
		FranchiseID: store.FranchiseID,
		Name:        store.Name,
	}
}

// FranchiseToResponse renders a franchise; admins are listed only when withAdmins is set
func FranchiseToResponse(franchise *entity.Franchise, withAdmins bool) FranchiseResponse {
	resp := FranchiseResponse{
		ID:     franchise.ID,
		Name:   franchise.Name,
		Stores: make([]StoreResponse, len(franchise.Stores)),
	}

	for i, store := range franchise.Stores {
		resp.Stores[i] = StoreResponse{ID: store.ID, Name: store.Name}
	}

	if withAdmins {
		resp.Admins = make([]FranchiseAdminResponse, len(franchise.Admins))
		for i, admin := range franchise.Admins {
			resp.Admins[i] = FranchiseAdminResponse{
				ID:    admin.ID,
				Name:  admin.Name,
				Email: admin.Email,
			}
		}
	}

	return resp
}
