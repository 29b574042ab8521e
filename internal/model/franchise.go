package model

// FranchiseAdmin identifies a user administering a franchise. On
// franchise creation only Email is required; the repository resolves it
// to an existing user and fills ID and Name.
type FranchiseAdmin struct {
	ID    uint64 `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Franchise mirrors the 'franchise' table together with its resolved
// admin users and stores.
type Franchise struct {
	ID     uint64           `json:"id"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins,omitempty"`
	Stores []Store          `json:"stores"`
}

// Store mirrors the 'store' table. Every store belongs to exactly one
// franchise.
type Store struct {
	ID          uint64 `json:"id"`
	FranchiseID uint64 `json:"franchiseId,omitempty"`
	Name        string `json:"name"`
}
