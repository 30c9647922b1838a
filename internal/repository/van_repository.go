package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvta/van-terminal-api/internal/models"
)

const vanColumns = `id, mv_file_no, plate_number, engine_no, chassis_no, denomination, piston_displacement,
	number_of_cylinders, fuel, make, series, body_type, body_no, year_model, gross_weight, net_weight,
	shipping_weight, net_capacity, year_last_registered, expiration_date, archived`

// VanRepository is the directory provider for vans.
type VanRepository struct {
	db *sqlx.DB
}

// NewVanRepository creates a new instance of VanRepository.
func NewVanRepository(db *sqlx.DB) *VanRepository {
	return &VanRepository{db: db}
}

// List returns every van, including archived ones. The admin frontend has
// always consumed the unfiltered list; see ListActive for the filtered view.
func (r *VanRepository) List(ctx context.Context) ([]models.Van, error) {
	const query = `SELECT ` + vanColumns + ` FROM vans ORDER BY plate_number`
	var vans []models.Van
	if err := r.db.SelectContext(ctx, &vans, query); err != nil {
		return nil, fmt.Errorf("list vans: %w", err)
	}
	return vans, nil
}

// ListActive returns only non-archived vans.
func (r *VanRepository) ListActive(ctx context.Context) ([]models.Van, error) {
	const query = `SELECT ` + vanColumns + ` FROM vans WHERE archived = FALSE ORDER BY plate_number`
	var vans []models.Van
	if err := r.db.SelectContext(ctx, &vans, query); err != nil {
		return nil, fmt.Errorf("list active vans: %w", err)
	}
	return vans, nil
}

// FindByID returns a van by identifier.
func (r *VanRepository) FindByID(ctx context.Context, id int64) (*models.Van, error) {
	const query = `SELECT ` + vanColumns + ` FROM vans WHERE id = $1 LIMIT 1`
	var van models.Van
	if err := r.db.GetContext(ctx, &van, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find van by id: %w", err)
	}
	return &van, nil
}

// Create inserts a new van and fills in the assigned id.
func (r *VanRepository) Create(ctx context.Context, van *models.Van) error {
	const query = `INSERT INTO vans (mv_file_no, plate_number, engine_no, chassis_no, denomination,
		piston_displacement, number_of_cylinders, fuel, make, series, body_type, body_no, year_model,
		gross_weight, net_weight, shipping_weight, net_capacity, year_last_registered, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`
	if err := r.db.GetContext(ctx, &van.ID, query,
		van.MVFileNo, van.PlateNumber, van.EngineNo, van.ChassisNo, van.Denomination,
		van.PistonDisplacement, van.NumberOfCylinders, van.Fuel, van.Make, van.Series,
		van.BodyType, van.BodyNo, van.YearModel, van.GrossWeight, van.NetWeight,
		van.ShippingWeight, van.NetCapacity, van.YearLastRegistered, van.ExpirationDate,
	); err != nil {
		return fmt.Errorf("create van: %w", err)
	}
	return nil
}

// Update rewrites every editable van field.
func (r *VanRepository) Update(ctx context.Context, van *models.Van) error {
	const query = `UPDATE vans SET mv_file_no = $2, plate_number = $3, engine_no = $4, chassis_no = $5,
		denomination = $6, piston_displacement = $7, number_of_cylinders = $8, fuel = $9, make = $10,
		series = $11, body_type = $12, body_no = $13, year_model = $14, gross_weight = $15,
		net_weight = $16, shipping_weight = $17, net_capacity = $18, year_last_registered = $19,
		expiration_date = $20 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		van.ID, van.MVFileNo, van.PlateNumber, van.EngineNo, van.ChassisNo, van.Denomination,
		van.PistonDisplacement, van.NumberOfCylinders, van.Fuel, van.Make, van.Series,
		van.BodyType, van.BodyNo, van.YearModel, van.GrossWeight, van.NetWeight,
		van.ShippingWeight, van.NetCapacity, van.YearLastRegistered, van.ExpirationDate,
	)
	if err != nil {
		return fmt.Errorf("update van: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated van rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Archive soft-deletes a van.
func (r *VanRepository) Archive(ctx context.Context, id int64) error {
	const query = `UPDATE vans SET archived = TRUE WHERE id = $1 AND archived = FALSE`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("archive van: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check archived van rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
