package models

// Operator is a registered van operator. Operators are never hard-deleted;
// the archived flag removes them from directory listings instead.
type Operator struct {
	ID         int64   `db:"id" json:"id"`
	Firstname  string  `db:"firstname" json:"firstname"`
	Middlename *string `db:"middlename" json:"middlename,omitempty"`
	Lastname   string  `db:"lastname" json:"lastname"`
	LicenseNo  string  `db:"license_no" json:"license_no"`
	Contact    string  `db:"contact" json:"contact"`
	Region     string  `db:"region" json:"region"`
	City       string  `db:"city" json:"city"`
	Brgy       string  `db:"brgy" json:"brgy"`
	Street     string  `db:"street" json:"street"`
	Archived   bool    `db:"archived" json:"-"`
}
