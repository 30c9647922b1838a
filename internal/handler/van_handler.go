package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/internal/service"
	appErrors "github.com/openvta/van-terminal-api/pkg/errors"
	"github.com/openvta/van-terminal-api/pkg/response"
)

type vanService interface {
	List(ctx context.Context) ([]models.Van, error)
	Get(ctx context.Context, id int64) (*models.Van, error)
	Create(ctx context.Context, req service.VanRequest) (*models.Van, error)
	Update(ctx context.Context, id int64, req service.VanRequest) error
	Archive(ctx context.Context, id int64) error
}

// VanHandler exposes the van directory endpoints.
type VanHandler struct {
	service vanService
}

// NewVanHandler builds a new handler.
func NewVanHandler(svc vanService) *VanHandler {
	return &VanHandler{service: svc}
}

// List godoc
// @Summary List all vans
// @Description Returns every van, archived included
// @Tags Vans
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /vans [get]
func (h *VanHandler) List(c *gin.Context) {
	vans, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, vans, nil)
}

// Get godoc
// @Summary Get a van by id
// @Tags Vans
// @Produce json
// @Param id path int true "Van ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /vans/{id} [get]
func (h *VanHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	van, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, van, nil)
}

// Create godoc
// @Summary Register a van
// @Tags Vans
// @Accept json
// @Produce json
// @Param payload body service.VanRequest true "Van payload"
// @Success 201 {object} response.Envelope
// @Router /vans [post]
func (h *VanHandler) Create(c *gin.Context) {
	var req service.VanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid van payload"))
		return
	}
	van, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, van)
}

// Update godoc
// @Summary Update a van
// @Tags Vans
// @Accept json
// @Produce json
// @Param id path int true "Van ID"
// @Param payload body service.VanRequest true "Van payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /vans/{id} [put]
func (h *VanHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.VanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid van payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "van updated successfully")
}

// Archive godoc
// @Summary Archive a van
// @Tags Vans
// @Produce json
// @Param id path int true "Van ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /vans/{id} [delete]
func (h *VanHandler) Archive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Archive(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "van archived successfully")
}
