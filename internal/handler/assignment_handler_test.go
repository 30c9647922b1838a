package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/internal/service"
	appErrors "github.com/openvta/van-terminal-api/pkg/errors"
	"github.com/openvta/van-terminal-api/pkg/export"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAssignmentService struct {
	assignments []models.Assignment
	details     []models.AssignmentDetail
	createErr   error
	updateErr   error
	deleteErr   error
	listErr     error
	deletedID   int64
}

func (s *stubAssignmentService) List(context.Context) ([]models.Assignment, error) {
	return s.assignments, s.listErr
}

func (s *stubAssignmentService) ListDetails(context.Context) ([]models.AssignmentDetail, error) {
	return s.details, s.listErr
}

func (s *stubAssignmentService) Create(_ context.Context, req service.CreateAssignmentRequest) (*models.Assignment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Assignment{ID: 1, VanID: req.VanID, OperatorID: req.OperatorID, AssignedAt: time.Now()}, nil
}

func (s *stubAssignmentService) Update(context.Context, service.UpdateAssignmentRequest) error {
	return s.updateErr
}

func (s *stubAssignmentService) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return s.deleteErr
}

type stubOperatorLister struct {
	operators []models.Operator
	err       error
}

func (s *stubOperatorLister) List(context.Context) ([]models.Operator, error) {
	return s.operators, s.err
}

type stubVanLister struct {
	vans []models.Van
	err  error
}

func (s *stubVanLister) List(context.Context) ([]models.Van, error) {
	return s.vans, s.err
}

func newAssignmentTestContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func newAssignmentHandlerForTest(svc *stubAssignmentService, operators *stubOperatorLister, vans *stubVanLister) *AssignmentHandler {
	if operators == nil {
		operators = &stubOperatorLister{}
	}
	if vans == nil {
		vans = &stubVanLister{}
	}
	return NewAssignmentHandler(svc, operators, vans, export.NewPDFExporter())
}

func TestAssignmentHandlerList(t *testing.T) {
	svc := &stubAssignmentService{assignments: []models.Assignment{{ID: 1, VanID: 100, OperatorID: 2}}}
	h := newAssignmentHandlerForTest(svc, nil, nil)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/assignments", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.Assignment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, int64(100), envelope.Data[0].VanID)
}

func TestAssignmentHandlerCreate(t *testing.T) {
	svc := &stubAssignmentService{}
	h := newAssignmentHandlerForTest(svc, nil, nil)

	c, w := newAssignmentTestContext(t, http.MethodPost, "/assignments", gin.H{"van_id": 100, "operator_id": 2})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAssignmentHandlerCreateInvalidBody(t *testing.T) {
	h := newAssignmentHandlerForTest(&stubAssignmentService{}, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignmentHandlerCreateAlreadyAssigned(t *testing.T) {
	svc := &stubAssignmentService{createErr: appErrors.Clone(appErrors.ErrAlreadyAssigned, "")}
	h := newAssignmentHandlerForTest(svc, nil, nil)

	c, w := newAssignmentTestContext(t, http.MethodPost, "/assignments", gin.H{"van_id": 100, "operator_id": 2})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrAlreadyAssigned.Code, envelope.Error.Code)
}

func TestAssignmentHandlerDelete(t *testing.T) {
	svc := &stubAssignmentService{}
	h := newAssignmentHandlerForTest(svc, nil, nil)

	c, w := newAssignmentTestContext(t, http.MethodDelete, "/assignments/4", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4), svc.deletedID)
}

func TestAssignmentHandlerDeleteNotFound(t *testing.T) {
	svc := &stubAssignmentService{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "assignment not found")}
	h := newAssignmentHandlerForTest(svc, nil, nil)

	c, w := newAssignmentTestContext(t, http.MethodDelete, "/assignments/999", nil)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignmentHandlerDeleteBadID(t *testing.T) {
	h := newAssignmentHandlerForTest(&stubAssignmentService{}, nil, nil)

	c, w := newAssignmentTestContext(t, http.MethodDelete, "/assignments/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignmentHandlerOverview(t *testing.T) {
	svc := &stubAssignmentService{assignments: []models.Assignment{{ID: 10, VanID: 100, OperatorID: 1}}}
	operators := &stubOperatorLister{operators: []models.Operator{{ID: 1}, {ID: 2}}}
	vans := &stubVanLister{vans: []models.Van{{ID: 100}, {ID: 101}}}
	h := newAssignmentHandlerForTest(svc, operators, vans)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/assignments/overview", nil)
	h.Overview(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data       AssignmentOverview `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Assignments, 1)
	require.Len(t, envelope.Data.AvailableOperators, 1)
	assert.Equal(t, int64(2), envelope.Data.AvailableOperators[0].ID)
	require.Len(t, envelope.Data.AvailableVans, 1)
	assert.Equal(t, int64(101), envelope.Data.AvailableVans[0].ID)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.Page)
	assert.Equal(t, 8, envelope.Pagination.PageSize)
	assert.Equal(t, 1, envelope.Pagination.TotalPages)
}

func TestAssignmentHandlerOverviewEditingReleasesSelection(t *testing.T) {
	svc := &stubAssignmentService{assignments: []models.Assignment{{ID: 10, VanID: 100, OperatorID: 1}}}
	operators := &stubOperatorLister{operators: []models.Operator{{ID: 1}}}
	vans := &stubVanLister{vans: []models.Van{{ID: 100}}}
	h := newAssignmentHandlerForTest(svc, operators, vans)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/assignments/overview?editing_id=10", nil)
	h.Overview(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data AssignmentOverview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.AvailableOperators, 1)
	assert.Len(t, envelope.Data.AvailableVans, 1)
}

func TestAssignmentHandlerOverviewClampsPage(t *testing.T) {
	assignments := make([]models.Assignment, 9)
	for i := range assignments {
		assignments[i] = models.Assignment{ID: int64(i + 1), VanID: int64(100 + i), OperatorID: int64(i + 1)}
	}
	svc := &stubAssignmentService{assignments: assignments}
	h := newAssignmentHandlerForTest(svc, nil, nil)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/assignments/overview?page=99", nil)
	h.Overview(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data       AssignmentOverview `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.Page)
	assert.Len(t, envelope.Data.Assignments, 1)
}

func TestAssignmentHandlerOverviewLoadFailure(t *testing.T) {
	svc := &stubAssignmentService{}
	vans := &stubVanLister{err: appErrors.Clone(appErrors.ErrInternal, "vans unavailable")}
	h := newAssignmentHandlerForTest(svc, nil, vans)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/assignments/overview", nil)
	h.Overview(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAssignmentHandlerExport(t *testing.T) {
	svc := &stubAssignmentService{details: []models.AssignmentDetail{{
		Assignment:        models.Assignment{ID: 1, VanID: 100, OperatorID: 2, AssignedAt: time.Now()},
		PlateNumber:       "ABC-1234",
		OperatorFirstname: "Juan",
		OperatorLastname:  "Dela Cruz",
	}}}
	h := newAssignmentHandlerForTest(svc, nil, nil)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/assignments/export", nil)
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "assignment-roster.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
