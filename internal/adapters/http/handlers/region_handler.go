package handlers

import (
	"errors"
	"strconv"
	"strings"

	"educenter/internal/adapters/persistence/models"
	"educenter/internal/adapters/persistence/repositories"
	"educenter/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegionHandler handles region master-data endpoints
type RegionHandler struct {
	regionRepo repositories.RegionRepository
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(regionRepo repositories.RegionRepository) *RegionHandler {
	return &RegionHandler{regionRepo: regionRepo}
}

// RegionRequest represents region create/update request body
type RegionRequest struct {
	Name string `json:"name"`
}

// List handles region listing
// @Summary List regions
// @Tags Regions
// @Produce json
// @Success 200 {object} response.Response
// @Router /regions [get]
func (h *RegionHandler) List(c *fiber.Ctx) error {
	regions, err := h.regionRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list regions")
	}

	return response.Success(c, "Regions retrieved successfully", fiber.Map{
		"regions": regions,
	})
}

// Create handles region creation
// @Summary Create a region
// @Tags Regions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegionRequest true "Region name"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /regions [post]
func (h *RegionHandler) Create(c *fiber.Ctx) error {
	var req RegionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	if _, err := h.regionRepo.GetByName(c.Context(), req.Name); err == nil {
		return response.BadRequest(c, "Region already exists")
	}

	region := &models.Region{Name: req.Name}
	if err := h.regionRepo.Create(c.Context(), region); err != nil {
		return response.InternalServerError(c, "Failed to create region")
	}

	return response.Created(c, "Region created", fiber.Map{
		"region": region,
	})
}

// Update handles region renaming
// @Summary Update a region
// @Tags Regions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Region ID"
// @Param body body RegionRequest true "Region name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /regions/{id} [put]
func (h *RegionHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.BadRequest(c, "Invalid region ID")
	}

	var req RegionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	region, err := h.regionRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Region not found")
		}
		return response.InternalServerError(c, "Failed to update region")
	}

	region.Name = req.Name
	if err := h.regionRepo.Update(c.Context(), region); err != nil {
		return response.InternalServerError(c, "Failed to update region")
	}

	return response.Success(c, "Region updated", fiber.Map{
		"region": region,
	})
}

// Delete handles region deletion
// @Summary Delete a region
// @Tags Regions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Region ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /regions/{id} [delete]
func (h *RegionHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.BadRequest(c, "Invalid region ID")
	}

	if _, err := h.regionRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Region not found")
		}
		return response.InternalServerError(c, "Failed to delete region")
	}

	if err := h.regionRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete region")
	}

	return response.Success(c, "Region deleted", nil)
}
