package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/internal/repository"
	appErrors "github.com/openvta/van-terminal-api/pkg/errors"
)

type operatorRepo interface {
	List(ctx context.Context) ([]models.Operator, error)
	FindByID(ctx context.Context, id int64) (*models.Operator, error)
	ExistsByLicense(ctx context.Context, licenseNo string, excludeID int64) (bool, error)
	Create(ctx context.Context, operator *models.Operator) error
	Update(ctx context.Context, operator *models.Operator) error
	Archive(ctx context.Context, id int64) error
}

type directoryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// OperatorRequest carries the editable operator fields.
type OperatorRequest struct {
	Firstname  string  `json:"firstname" validate:"required"`
	Middlename *string `json:"middlename"`
	Lastname   string  `json:"lastname" validate:"required"`
	LicenseNo  string  `json:"license_no" validate:"required"`
	Contact    string  `json:"contact" validate:"required"`
	Region     string  `json:"region" validate:"required"`
	City       string  `json:"city" validate:"required"`
	Brgy       string  `json:"brgy" validate:"required"`
	Street     string  `json:"street" validate:"required"`
}

// OperatorService is the directory service for operators.
type OperatorService struct {
	operators operatorRepo
	cache     directoryCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOperatorService creates a service instance.
func NewOperatorService(operators operatorRepo, cache directoryCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *OperatorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperatorService{operators: operators, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns all non-archived operators, served from cache when warm.
func (s *OperatorService) List(ctx context.Context) ([]models.Operator, error) {
	if s.cache != nil {
		var cached []models.Operator
		if err := s.cache.Get(ctx, repository.CacheKeyOperators, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("operator cache read failed", zap.Error(err))
		}
	}

	operators, err := s.operators.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list operators")
	}
	if operators == nil {
		operators = []models.Operator{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, repository.CacheKeyOperators, operators, s.cacheTTL); err != nil {
			s.logger.Warn("operator cache write failed", zap.Error(err))
		}
	}
	return operators, nil
}

// Get returns a single operator by id.
func (s *OperatorService) Get(ctx context.Context, id int64) (*models.Operator, error) {
	operator, err := s.operators.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "operator not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load operator")
	}
	return operator, nil
}

// Create registers a new operator, rejecting duplicate license numbers.
func (s *OperatorService) Create(ctx context.Context, req OperatorRequest) (*models.Operator, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid operator payload")
	}

	exists, err := s.operators.ExistsByLicense(ctx, req.LicenseNo, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check license number")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "license number already registered")
	}

	operator := &models.Operator{
		Firstname:  req.Firstname,
		Middlename: req.Middlename,
		Lastname:   req.Lastname,
		LicenseNo:  req.LicenseNo,
		Contact:    req.Contact,
		Region:     req.Region,
		City:       req.City,
		Brgy:       req.Brgy,
		Street:     req.Street,
	}
	if err := s.operators.Create(ctx, operator); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create operator")
	}

	s.invalidate(ctx)
	return operator, nil
}

// Update rewrites an operator record.
func (s *OperatorService) Update(ctx context.Context, id int64, req OperatorRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid operator payload")
	}

	exists, err := s.operators.ExistsByLicense(ctx, req.LicenseNo, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check license number")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "license number already registered")
	}

	operator := &models.Operator{
		ID:         id,
		Firstname:  req.Firstname,
		Middlename: req.Middlename,
		Lastname:   req.Lastname,
		LicenseNo:  req.LicenseNo,
		Contact:    req.Contact,
		Region:     req.Region,
		City:       req.City,
		Brgy:       req.Brgy,
		Street:     req.Street,
	}
	if err := s.operators.Update(ctx, operator); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "operator not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update operator")
	}

	s.invalidate(ctx)
	return nil
}

// Archive soft-deletes an operator.
func (s *OperatorService) Archive(ctx context.Context, id int64) error {
	if err := s.operators.Archive(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "operator not found or already archived")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive operator")
	}

	s.invalidate(ctx)
	return nil
}

func (s *OperatorService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, repository.CacheKeyOperators); err != nil {
		s.logger.Warn("operator cache invalidation failed", zap.Error(err))
	}
}
