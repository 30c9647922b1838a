package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvta/van-terminal-api/internal/models"
)

// AssignmentRepository persists van-operator assignments. The table carries
// unique indexes on van_id and operator_id, so the database is the final
// arbiter of the one-van/one-operator rule regardless of what the service
// layer checked beforehand.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// FindConflicting returns assignments already holding the given van or
// operator, excluding the row with excludeID when provided. Used by the
// service as the fast-path conflict check before a write.
func (r *AssignmentRepository) FindConflicting(ctx context.Context, vanID, operatorID int64, excludeID *int64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if excludeID != nil {
		const query = `SELECT id, van_id, operator_id, assigned_at FROM assignments WHERE (van_id = $1 OR operator_id = $2) AND id != $3`
		if err := r.db.SelectContext(ctx, &assignments, query, vanID, operatorID, *excludeID); err != nil {
			return nil, fmt.Errorf("find conflicting assignments: %w", err)
		}
		return assignments, nil
	}
	const query = `SELECT id, van_id, operator_id, assigned_at FROM assignments WHERE van_id = $1 OR operator_id = $2`
	if err := r.db.SelectContext(ctx, &assignments, query, vanID, operatorID); err != nil {
		return nil, fmt.Errorf("find conflicting assignments: %w", err)
	}
	return assignments, nil
}

// Insert creates an assignment with a server-assigned id and timestamp. A
// unique-index violation is returned unwrapped enough for the caller to
// recognise it as a constraint conflict.
func (r *AssignmentRepository) Insert(ctx context.Context, vanID, operatorID int64) (*models.Assignment, error) {
	const query = `INSERT INTO assignments (van_id, operator_id) VALUES ($1, $2) RETURNING id, van_id, operator_id, assigned_at`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, vanID, operatorID); err != nil {
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	return &assignment, nil
}

// Update repoints an assignment to a new van/operator pair.
func (r *AssignmentRepository) Update(ctx context.Context, id, vanID, operatorID int64) error {
	const query = `UPDATE assignments SET van_id = $2, operator_id = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, vanID, operatorID)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated assignment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an assignment outright. Assignments have no archive state.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM assignments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted assignment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAll returns every assignment, unordered beyond insertion id.
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]models.Assignment, error) {
	const query = `SELECT id, van_id, operator_id, assigned_at FROM assignments ORDER BY id`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListDetails returns assignments joined with van and operator display fields
// for the roster export.
func (r *AssignmentRepository) ListDetails(ctx context.Context) ([]models.AssignmentDetail, error) {
	const query = `
SELECT a.id, a.van_id, a.operator_id, a.assigned_at,
       v.plate_number, o.firstname AS operator_firstname, o.lastname AS operator_lastname
FROM assignments a
JOIN vans v ON v.id = a.van_id
JOIN operators o ON o.id = a.operator_id
ORDER BY v.plate_number ASC`
	var details []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("list assignment details: %w", err)
	}
	return details, nil
}
