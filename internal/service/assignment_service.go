package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/pkg/database"
	appErrors "github.com/openvta/van-terminal-api/pkg/errors"
)

type assignmentRepo interface {
	FindConflicting(ctx context.Context, vanID, operatorID int64, excludeID *int64) ([]models.Assignment, error)
	Insert(ctx context.Context, vanID, operatorID int64) (*models.Assignment, error)
	Update(ctx context.Context, id, vanID, operatorID int64) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]models.Assignment, error)
	ListDetails(ctx context.Context) ([]models.AssignmentDetail, error)
}

// CreateAssignmentRequest pairs a van with an operator.
type CreateAssignmentRequest struct {
	VanID      int64 `json:"van_id" validate:"required,min=1"`
	OperatorID int64 `json:"operator_id" validate:"required,min=1"`
}

// UpdateAssignmentRequest repoints an existing assignment.
type UpdateAssignmentRequest struct {
	ID         int64 `json:"id" validate:"required,min=1"`
	VanID      int64 `json:"van_id" validate:"required,min=1"`
	OperatorID int64 `json:"operator_id" validate:"required,min=1"`
}

// AssignmentService enforces the one-van/one-operator pairing rule on top of
// the assignment store. The conflict pre-check here only exists to give the
// caller a friendly answer without burning an insert; the unique indexes in
// the store decide races.
//
// Referenced vans/operators are not verified to exist or be unarchived. That
// matches the behaviour the admin frontend was built against and stays a
// schema-level contract (plain foreign keys) rather than a service check.
type AssignmentService struct {
	assignments assignmentRepo
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssignmentService creates a service instance.
func NewAssignmentService(assignments assignmentRepo, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{assignments: assignments, validator: validate, logger: logger}
}

// List returns every assignment.
func (s *AssignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	assignments, err := s.assignments.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, nil
}

// ListDetails returns assignments with display fields for rosters.
func (s *AssignmentService) ListDetails(ctx context.Context) ([]models.AssignmentDetail, error) {
	details, err := s.assignments.ListDetails(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignment details")
	}
	return details, nil
}

// Create pairs a van with an operator, rejecting the request when either side
// is already held by another assignment.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	conflicts, err := s.assignments.FindConflicting(ctx, req.VanID, req.OperatorID, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment conflicts")
	}
	if len(conflicts) > 0 {
		return nil, appErrors.Clone(appErrors.ErrAlreadyAssigned, "")
	}

	assignment, err := s.assignments.Insert(ctx, req.VanID, req.OperatorID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			// A concurrent writer won the race between the check and the
			// insert. The constraint is authoritative.
			s.logger.Info("assignment insert lost uniqueness race",
				zap.Int64("van_id", req.VanID), zap.Int64("operator_id", req.OperatorID))
			return nil, appErrors.Clone(appErrors.ErrAlreadyAssigned, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Update repoints an assignment, excluding the row itself from the conflict
// check so an edit that keeps one side unchanged does not self-conflict.
func (s *AssignmentService) Update(ctx context.Context, req UpdateAssignmentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	conflicts, err := s.assignments.FindConflicting(ctx, req.VanID, req.OperatorID, &req.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment conflicts")
	}
	if len(conflicts) > 0 {
		return appErrors.Clone(appErrors.ErrAlreadyAssigned, "")
	}

	if err := s.assignments.Update(ctx, req.ID, req.VanID, req.OperatorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		if database.IsUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrAlreadyAssigned, "")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	return nil
}

// Delete removes an assignment outright.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}
