package entity

type Franchise struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Admins []*FranchiseAdmin
	Stores []*Store
}

type FranchiseAdmin struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

type Store struct {
	ID          int64  `db:"id"`
	FranchiseID int64  `db:"franchise_id"`
	Name        string `db:"name"`
}
