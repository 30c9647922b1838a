package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/internal/service"
	appErrors "github.com/openvta/van-terminal-api/pkg/errors"
)

type stubOperatorService struct {
	operators  []models.Operator
	getErr     error
	createErr  error
	updateErr  error
	archiveErr error
	archivedID int64
}

func (s *stubOperatorService) List(context.Context) ([]models.Operator, error) {
	return s.operators, nil
}

func (s *stubOperatorService) Get(_ context.Context, id int64) (*models.Operator, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &models.Operator{ID: id}, nil
}

func (s *stubOperatorService) Create(_ context.Context, req service.OperatorRequest) (*models.Operator, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Operator{ID: 1, Firstname: req.Firstname, Lastname: req.Lastname, LicenseNo: req.LicenseNo}, nil
}

func (s *stubOperatorService) Update(context.Context, int64, service.OperatorRequest) error {
	return s.updateErr
}

func (s *stubOperatorService) Archive(_ context.Context, id int64) error {
	s.archivedID = id
	return s.archiveErr
}

func operatorPayload() gin.H {
	return gin.H{
		"firstname":  "Juan",
		"lastname":   "Dela Cruz",
		"license_no": "N01-23-456789",
		"contact":    "09170000001",
		"region":     "IV-A",
		"city":       "Calamba",
		"brgy":       "Halang",
		"street":     "Purok 3",
	}
}

func TestOperatorHandlerCreate(t *testing.T) {
	svc := &stubOperatorService{}
	h := NewOperatorHandler(svc)

	c, w := newAssignmentTestContext(t, http.MethodPost, "/operators", operatorPayload())
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope struct {
		Data models.Operator `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, int64(1), envelope.Data.ID)
}

func TestOperatorHandlerCreateDuplicateLicense(t *testing.T) {
	svc := &stubOperatorService{createErr: appErrors.Clone(appErrors.ErrConflict, "license number already registered")}
	h := NewOperatorHandler(svc)

	c, w := newAssignmentTestContext(t, http.MethodPost, "/operators", operatorPayload())
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOperatorHandlerGetNotFound(t *testing.T) {
	svc := &stubOperatorService{getErr: appErrors.Clone(appErrors.ErrNotFound, "operator not found")}
	h := NewOperatorHandler(svc)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/operators/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOperatorHandlerGetBadID(t *testing.T) {
	h := NewOperatorHandler(&stubOperatorService{})

	c, w := newAssignmentTestContext(t, http.MethodGet, "/operators/0", nil)
	c.Params = gin.Params{{Key: "id", Value: "0"}}
	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOperatorHandlerArchive(t *testing.T) {
	svc := &stubOperatorService{}
	h := NewOperatorHandler(svc)

	c, w := newAssignmentTestContext(t, http.MethodDelete, "/operators/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.Archive(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), svc.archivedID)
}
