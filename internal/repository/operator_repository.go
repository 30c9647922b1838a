package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvta/van-terminal-api/internal/models"
)

const operatorColumns = `id, firstname, middlename, lastname, license_no, contact, region, city, brgy, street, archived`

// OperatorRepository is the directory provider for operators. Listings hide
// archived rows; lookups by id do not, so an archived operator can still be
// inspected and edited.
type OperatorRepository struct {
	db *sqlx.DB
}

// NewOperatorRepository creates a new instance of OperatorRepository.
func NewOperatorRepository(db *sqlx.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

// List returns all non-archived operators.
func (r *OperatorRepository) List(ctx context.Context) ([]models.Operator, error) {
	const query = `SELECT ` + operatorColumns + ` FROM operators WHERE archived = FALSE ORDER BY lastname, firstname`
	var operators []models.Operator
	if err := r.db.SelectContext(ctx, &operators, query); err != nil {
		return nil, fmt.Errorf("list operators: %w", err)
	}
	return operators, nil
}

// FindByID returns an operator by identifier.
func (r *OperatorRepository) FindByID(ctx context.Context, id int64) (*models.Operator, error) {
	const query = `SELECT ` + operatorColumns + ` FROM operators WHERE id = $1 LIMIT 1`
	var operator models.Operator
	if err := r.db.GetContext(ctx, &operator, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find operator by id: %w", err)
	}
	return &operator, nil
}

// ExistsByLicense checks whether a license number is already registered,
// excluding the given operator id when non-zero.
func (r *OperatorRepository) ExistsByLicense(ctx context.Context, licenseNo string, excludeID int64) (bool, error) {
	const query = `SELECT 1 FROM operators WHERE license_no = $1 AND id != $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, licenseNo, excludeID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check operator license: %w", err)
	}
	return true, nil
}

// Create inserts a new operator and fills in the assigned id.
func (r *OperatorRepository) Create(ctx context.Context, operator *models.Operator) error {
	const query = `INSERT INTO operators (firstname, middlename, lastname, license_no, contact, region, city, brgy, street)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := r.db.GetContext(ctx, &operator.ID, query,
		operator.Firstname, operator.Middlename, operator.Lastname, operator.LicenseNo,
		operator.Contact, operator.Region, operator.City, operator.Brgy, operator.Street,
	); err != nil {
		return fmt.Errorf("create operator: %w", err)
	}
	return nil
}

// Update rewrites every editable operator field.
func (r *OperatorRepository) Update(ctx context.Context, operator *models.Operator) error {
	const query = `UPDATE operators SET firstname = $2, middlename = $3, lastname = $4, license_no = $5,
		contact = $6, region = $7, city = $8, brgy = $9, street = $10 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		operator.ID, operator.Firstname, operator.Middlename, operator.Lastname, operator.LicenseNo,
		operator.Contact, operator.Region, operator.City, operator.Brgy, operator.Street,
	)
	if err != nil {
		return fmt.Errorf("update operator: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated operator rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Archive soft-deletes an operator. Already-archived rows report not found.
func (r *OperatorRepository) Archive(ctx context.Context, id int64) error {
	const query = `UPDATE operators SET archived = TRUE WHERE id = $1 AND archived = FALSE`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("archive operator: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check archived operator rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
