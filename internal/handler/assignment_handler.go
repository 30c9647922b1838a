package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/internal/presenter"
	"github.com/openvta/van-terminal-api/internal/service"
	appErrors "github.com/openvta/van-terminal-api/pkg/errors"
	"github.com/openvta/van-terminal-api/pkg/export"
	"github.com/openvta/van-terminal-api/pkg/response"
)

type assignmentService interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListDetails(ctx context.Context) ([]models.AssignmentDetail, error)
	Create(ctx context.Context, req service.CreateAssignmentRequest) (*models.Assignment, error)
	Update(ctx context.Context, req service.UpdateAssignmentRequest) error
	Delete(ctx context.Context, id int64) error
}

type operatorLister interface {
	List(ctx context.Context) ([]models.Operator, error)
}

type vanLister interface {
	List(ctx context.Context) ([]models.Van, error)
}

// AssignmentOverview is the presenter projection served to the admin form:
// one page of assignments plus the selectable operator and van pools.
type AssignmentOverview struct {
	Assignments        []models.Assignment `json:"assignments"`
	AvailableOperators []models.Operator   `json:"available_operators"`
	AvailableVans      []models.Van        `json:"available_vans"`
}

// AssignmentHandler exposes assignment management endpoints.
type AssignmentHandler struct {
	service   assignmentService
	operators operatorLister
	vans      vanLister
	exporter  *export.PDFExporter
}

// NewAssignmentHandler builds a new handler.
func NewAssignmentHandler(svc assignmentService, operators operatorLister, vans vanLister, exporter *export.PDFExporter) *AssignmentHandler {
	return &AssignmentHandler{service: svc, operators: operators, vans: vans, exporter: exporter}
}

// List godoc
// @Summary List all assignments
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// Create godoc
// @Summary Assign a van to an operator
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Update godoc
// @Summary Repoint an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.UpdateAssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assignments [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req service.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "assignment updated successfully")
}

// Delete godoc
// @Summary Delete an assignment
// @Tags Assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "assignment id is required"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "assignment deleted successfully")
}

// Overview godoc
// @Summary Assignment form projection
// @Description One page of assignments plus operator/van availability pools
// @Tags Assignments
// @Produce json
// @Param page query int false "1-based page index"
// @Param editing_id query int false "Assignment under edit, excluded from availability"
// @Success 200 {object} response.Envelope
// @Router /assignments/overview [get]
func (h *AssignmentHandler) Overview(c *gin.Context) {
	snap, err := presenter.Load(c.Request.Context(), h.operators, h.vans, h.service)
	if err != nil {
		response.Error(c, err)
		return
	}

	var editingID *int64
	if raw := c.Query("editing_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			editingID = &id
		}
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			page = p
		}
	}
	page = presenter.ClampPage(page, len(snap.Assignments))

	overview := AssignmentOverview{
		Assignments:        presenter.Window(snap.Assignments, page),
		AvailableOperators: presenter.AvailableOperators(snap.Operators, snap.Assignments, editingID),
		AvailableVans:      presenter.AvailableVans(snap.Vans, snap.Assignments, editingID),
	}
	pagination := &models.Pagination{
		Page:       page,
		PageSize:   presenter.PageSize,
		TotalCount: len(snap.Assignments),
		TotalPages: presenter.TotalPages(len(snap.Assignments)),
	}
	response.JSON(c, http.StatusOK, overview, pagination)
}

// Export godoc
// @Summary Export the assignment roster as PDF
// @Tags Assignments
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /assignments/export [get]
func (h *AssignmentHandler) Export(c *gin.Context) {
	details, err := h.service.ListDetails(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	data := export.Dataset{
		Headers: []string{"Plate Number", "Operator", "Assigned At"},
	}
	for _, d := range details {
		data.Rows = append(data.Rows, map[string]string{
			"Plate Number": d.PlateNumber,
			"Operator":     d.OperatorFirstname + " " + d.OperatorLastname,
			"Assigned At":  d.AssignedAt.Format(time.RFC3339),
		})
	}

	pdf, err := h.exporter.Render(data, "Van Assignment Roster")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assignment-roster.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
