package entity

import (
	"encoding/json"
)

type Role string

const (
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
	RoleStoreAdmin Role = "store_admin"
	RoleAdmin      Role = "admin"
)

// GlobalObjectID marks an unscoped grant.
const GlobalObjectID int64 = 0

func (r Role) Valid() bool {
	switch r {
	case RoleDiner, RoleFranchisee, RoleStoreAdmin, RoleAdmin:
		return true
	}
	return false
}

// RoleAssignment grants Role over ObjectID (a franchise or store id, 0 for global).
type RoleAssignment struct {
	Role     Role  `db:"role" json:"role"`
	ObjectID int64 `db:"object_id" json:"objectId,omitempty"`
}

// RoleSet keeps assignments in insertion order and indexes them for
// constant-time membership checks.
type RoleSet struct {
	ordered []RoleAssignment
	scoped  map[RoleAssignment]struct{}
	names   map[Role]struct{}
}

func NewRoleSet(assignments ...RoleAssignment) RoleSet {
	s := RoleSet{
		scoped: make(map[RoleAssignment]struct{}, len(assignments)),
		names:  make(map[Role]struct{}, len(assignments)),
	}
	for _, a := range assignments {
		s.add(a)
	}
	return s
}

func (s *RoleSet) add(a RoleAssignment) {
	if _, ok := s.scoped[a]; ok {
		return
	}
	s.ordered = append(s.ordered, a)
	s.scoped[a] = struct{}{}
	s.names[a.Role] = struct{}{}
}

// With returns a copy of s that also contains a.
func (s RoleSet) With(a RoleAssignment) RoleSet {
	out := NewRoleSet(s.ordered...)
	out.add(a)
	return out
}

// Has reports whether any assignment carries role, whatever its object.
func (s RoleSet) Has(role Role) bool {
	_, ok := s.names[role]
	return ok
}

// HasScoped reports whether role is granted over exactly objectID.
func (s RoleSet) HasScoped(role Role, objectID int64) bool {
	_, ok := s.scoped[RoleAssignment{Role: role, ObjectID: objectID}]
	return ok
}

func (s RoleSet) IsAdmin() bool {
	return s.HasScoped(RoleAdmin, GlobalObjectID)
}

// CanManageFranchise is true for global admins and for franchisees of franchiseID.
func (s RoleSet) CanManageFranchise(franchiseID int64) bool {
	return s.IsAdmin() || s.HasScoped(RoleFranchisee, franchiseID)
}

func (s RoleSet) List() []RoleAssignment {
	out := make([]RoleAssignment, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s RoleSet) Len() int { return len(s.ordered) }

func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var assignments []RoleAssignment
	if err := json.Unmarshal(data, &assignments); err != nil {
		return err
	}
	*s = NewRoleSet(assignments...)
	return nil
}
