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

type vanRepo interface {
	List(ctx context.Context) ([]models.Van, error)
	ListActive(ctx context.Context) ([]models.Van, error)
	FindByID(ctx context.Context, id int64) (*models.Van, error)
	Create(ctx context.Context, van *models.Van) error
	Update(ctx context.Context, van *models.Van) error
	Archive(ctx context.Context, id int64) error
}

// VanRequest carries the editable vehicle registration fields.
type VanRequest struct {
	MVFileNo           string `json:"mv_file_no" validate:"required"`
	PlateNumber        string `json:"plate_number" validate:"required"`
	EngineNo           string `json:"engine_no" validate:"required"`
	ChassisNo          string `json:"chassis_no" validate:"required"`
	Denomination       string `json:"denomination"`
	PistonDisplacement string `json:"piston_displacement"`
	NumberOfCylinders  int    `json:"number_of_cylinders"`
	Fuel               string `json:"fuel"`
	Make               string `json:"make"`
	Series             string `json:"series"`
	BodyType           string `json:"body_type"`
	BodyNo             string `json:"body_no"`
	YearModel          int    `json:"year_model"`
	GrossWeight        int    `json:"gross_weight"`
	NetWeight          int    `json:"net_weight"`
	ShippingWeight     int    `json:"shipping_weight"`
	NetCapacity        int    `json:"net_capacity"`
	YearLastRegistered int    `json:"year_last_registered"`
	ExpirationDate     string `json:"expiration_date"`
}

// VanService is the directory service for vans.
//
// List intentionally returns archived vans as well: the admin frontend never
// filtered them, and the availability projection downstream inherits that
// behaviour. Changing it is a stakeholder decision, not a bug fix.
type VanService struct {
	vans      vanRepo
	cache     directoryCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVanService creates a service instance.
func NewVanService(vans vanRepo, cache directoryCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *VanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VanService{vans: vans, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns every van, archived included.
func (s *VanService) List(ctx context.Context) ([]models.Van, error) {
	if s.cache != nil {
		var cached []models.Van
		if err := s.cache.Get(ctx, repository.CacheKeyVans, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("van cache read failed", zap.Error(err))
		}
	}

	vans, err := s.vans.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vans")
	}
	if vans == nil {
		vans = []models.Van{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, repository.CacheKeyVans, vans, s.cacheTTL); err != nil {
			s.logger.Warn("van cache write failed", zap.Error(err))
		}
	}
	return vans, nil
}

// Get returns a single van by id.
func (s *VanService) Get(ctx context.Context, id int64) (*models.Van, error) {
	van, err := s.vans.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "van not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load van")
	}
	return van, nil
}

// Create registers a new van.
func (s *VanService) Create(ctx context.Context, req VanRequest) (*models.Van, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid van payload")
	}

	van := vanFromRequest(0, req)
	if err := s.vans.Create(ctx, van); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create van")
	}

	s.invalidate(ctx)
	return van, nil
}

// Update rewrites a van record.
func (s *VanService) Update(ctx context.Context, id int64, req VanRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid van payload")
	}

	van := vanFromRequest(id, req)
	if err := s.vans.Update(ctx, van); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "van not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update van")
	}

	s.invalidate(ctx)
	return nil
}

// Archive soft-deletes a van.
func (s *VanService) Archive(ctx context.Context, id int64) error {
	if err := s.vans.Archive(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "van not found or already archived")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive van")
	}

	s.invalidate(ctx)
	return nil
}

func (s *VanService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, repository.CacheKeyVans); err != nil {
		s.logger.Warn("van cache invalidation failed", zap.Error(err))
	}
}

func vanFromRequest(id int64, req VanRequest) *models.Van {
	return &models.Van{
		ID:                 id,
		MVFileNo:           req.MVFileNo,
		PlateNumber:        req.PlateNumber,
		EngineNo:           req.EngineNo,
		ChassisNo:          req.ChassisNo,
		Denomination:       req.Denomination,
		PistonDisplacement: req.PistonDisplacement,
		NumberOfCylinders:  req.NumberOfCylinders,
		Fuel:               req.Fuel,
		Make:               req.Make,
		Series:             req.Series,
		BodyType:           req.BodyType,
		BodyNo:             req.BodyNo,
		YearModel:          req.YearModel,
		GrossWeight:        req.GrossWeight,
		NetWeight:          req.NetWeight,
		ShippingWeight:     req.ShippingWeight,
		NetCapacity:        req.NetCapacity,
		YearLastRegistered: req.YearLastRegistered,
		ExpirationDate:     req.ExpirationDate,
	}
}
