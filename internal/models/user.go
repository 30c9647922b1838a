package models

// Role identifiers carried in tokens and the users table.
const (
	RoleAdmin = 1
	RoleStaff = 2
)

// User represents an application user stored in the users table.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password" json:"-"`
	RoleID       int    `db:"role_id" json:"role_id"`
	Archived     bool   `db:"archived" json:"-"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}
