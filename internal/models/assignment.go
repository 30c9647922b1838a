package models

import "time"

// Assignment pairs exactly one van with exactly one operator. Unlike the
// directory records it links, assignments are hard-deleted, never archived.
type Assignment struct {
	ID         int64     `db:"id" json:"id"`
	VanID      int64     `db:"van_id" json:"van_id"`
	OperatorID int64     `db:"operator_id" json:"operator_id"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}

// AssignmentDetail enriches an assignment with display fields for rosters.
type AssignmentDetail struct {
	Assignment
	PlateNumber       string `db:"plate_number" json:"plate_number"`
	OperatorFirstname string `db:"operator_firstname" json:"operator_firstname"`
	OperatorLastname  string `db:"operator_lastname" json:"operator_lastname"`
}
