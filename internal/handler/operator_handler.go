package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/internal/service"
	appErrors "github.com/openvta/van-terminal-api/pkg/errors"
	"github.com/openvta/van-terminal-api/pkg/response"
)

type operatorService interface {
	List(ctx context.Context) ([]models.Operator, error)
	Get(ctx context.Context, id int64) (*models.Operator, error)
	Create(ctx context.Context, req service.OperatorRequest) (*models.Operator, error)
	Update(ctx context.Context, id int64, req service.OperatorRequest) error
	Archive(ctx context.Context, id int64) error
}

// OperatorHandler exposes the operator directory endpoints.
type OperatorHandler struct {
	service operatorService
}

// NewOperatorHandler builds a new handler.
func NewOperatorHandler(svc operatorService) *OperatorHandler {
	return &OperatorHandler{service: svc}
}

// List godoc
// @Summary List non-archived operators
// @Tags Operators
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /operators [get]
func (h *OperatorHandler) List(c *gin.Context) {
	operators, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, operators, nil)
}

// Get godoc
// @Summary Get an operator by id
// @Tags Operators
// @Produce json
// @Param id path int true "Operator ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /operators/{id} [get]
func (h *OperatorHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	operator, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, operator, nil)
}

// Create godoc
// @Summary Register an operator
// @Tags Operators
// @Accept json
// @Produce json
// @Param payload body service.OperatorRequest true "Operator payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /operators [post]
func (h *OperatorHandler) Create(c *gin.Context) {
	var req service.OperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid operator payload"))
		return
	}
	operator, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, operator)
}

// Update godoc
// @Summary Update an operator
// @Tags Operators
// @Accept json
// @Produce json
// @Param id path int true "Operator ID"
// @Param payload body service.OperatorRequest true "Operator payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /operators/{id} [put]
func (h *OperatorHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.OperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid operator payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "operator updated successfully")
}

// Archive godoc
// @Summary Archive an operator
// @Description Soft delete; the record stays stored but leaves listings
// @Tags Operators
// @Produce json
// @Param id path int true "Operator ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /operators/{id} [delete]
func (h *OperatorHandler) Archive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Archive(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "operator archived successfully")
}

// pathID parses the :id path parameter, writing the error response itself.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id is required"))
		return 0, false
	}
	return id, true
}
