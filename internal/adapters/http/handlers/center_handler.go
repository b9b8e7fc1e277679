package handlers

import (
	"errors"
	"strconv"
	"strings"

	"educenter/internal/core/services"
	"educenter/internal/pkg/pagination"
	"educenter/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CenterHandler handles learning center directory endpoints
type CenterHandler struct {
	centerService *services.CenterService
}

// NewCenterHandler creates a new center handler
func NewCenterHandler(centerService *services.CenterService) *CenterHandler {
	return &CenterHandler{centerService: centerService}
}

// List handles center listing
// @Summary List centers
// @Tags Centers
// @Produce json
// @Param region_id query int false "Filter by region"
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /centers [get]
func (h *CenterHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	regionID, _ := strconv.ParseUint(c.Query("region_id", "0"), 10, 32)

	centers, total, err := h.centerService.ListCenters(c.Context(), uint(regionID), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list centers")
	}

	return response.Success(c, "Centers retrieved successfully", pagination.NewResponse(centers, params, total))
}

// Get handles single center retrieval
// @Summary Get a center
// @Tags Centers
// @Produce json
// @Param id path int true "Center ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /centers/{id} [get]
func (h *CenterHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.BadRequest(c, "Invalid center ID")
	}

	center, err := h.centerService.GetCenter(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCenterNotFound) {
			return response.NotFound(c, "Center not found")
		}
		return response.InternalServerError(c, "Failed to get center")
	}

	return response.Success(c, "Center retrieved successfully", fiber.Map{
		"center": center,
	})
}

// Create handles center registration
// @Summary Create a center
// @Tags Centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CenterInput true "Center data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /centers [post]
func (h *CenterHandler) Create(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("accountID").(uint)
	if !ok {
		return response.Unauthorized(c, "Token not provided")
	}

	var input services.CenterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if input.RegionID == 0 {
		return response.BadRequest(c, "Region is required")
	}

	center, err := h.centerService.CreateCenter(c.Context(), ownerID, &input)
	if err != nil {
		if errors.Is(err, services.ErrRegionNotFound) {
			return response.NotFound(c, "Region not found")
		}
		return response.InternalServerError(c, "Failed to create center")
	}

	return response.Created(c, "Center created", fiber.Map{
		"center": center,
	})
}

// Update handles center updates by the owner or an admin
// @Summary Update a center
// @Tags Centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Center ID"
// @Param body body services.CenterInput true "Center data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /centers/{id} [put]
func (h *CenterHandler) Update(c *fiber.Ctx) error {
	actorID, ok := c.Locals("accountID").(uint)
	if !ok {
		return response.Unauthorized(c, "Token not provided")
	}
	actorRole, _ := c.Locals("role").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.BadRequest(c, "Invalid center ID")
	}

	var input services.CenterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	center, err := h.centerService.UpdateCenter(c.Context(), actorID, actorRole, uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCenterNotFound):
			return response.NotFound(c, "Center not found")
		case errors.Is(err, services.ErrRegionNotFound):
			return response.NotFound(c, "Region not found")
		case errors.Is(err, services.ErrNotCenterOwner):
			return response.Forbidden(c, "Only the owner or an admin can manage this center")
		default:
			return response.InternalServerError(c, "Failed to update center")
		}
	}

	return response.Success(c, "Center updated", fiber.Map{
		"center": center,
	})
}

// Delete handles center deletion by the owner or an admin
// @Summary Delete a center
// @Tags Centers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Center ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /centers/{id} [delete]
func (h *CenterHandler) Delete(c *fiber.Ctx) error {
	actorID, ok := c.Locals("accountID").(uint)
	if !ok {
		return response.Unauthorized(c, "Token not provided")
	}
	actorRole, _ := c.Locals("role").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.BadRequest(c, "Invalid center ID")
	}

	err = h.centerService.DeleteCenter(c.Context(), actorID, actorRole, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCenterNotFound):
			return response.NotFound(c, "Center not found")
		case errors.Is(err, services.ErrNotCenterOwner):
			return response.Forbidden(c, "Only the owner or an admin can manage this center")
		default:
			return response.InternalServerError(c, "Failed to delete center")
		}
	}

	return response.Success(c, "Center deleted", nil)
}
