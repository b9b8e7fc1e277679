package handlers

import (
	"errors"
	"strconv"

	"educenter/internal/core/services"
	"educenter/internal/pkg/pagination"
	"educenter/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles account administration endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// PromotionRequest represents role promotion request body
type PromotionRequest struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

// Promote handles role promotion
// @Summary Promote a user to a new role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PromotionRequest true "Target user and role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /user/promotion [post]
func (h *UserHandler) Promote(c *fiber.Ctx) error {
	actorID, ok := c.Locals("accountID").(uint)
	if !ok {
		return response.Unauthorized(c, "Token not provided")
	}

	var req PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserID == 0 {
		return response.BadRequest(c, "User ID is required")
	}
	if req.Role == "" {
		return response.BadRequest(c, "Role is required")
	}

	account, message, err := h.userService.PromoteRole(c.Context(), actorID, req.UserID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Unknown role")
		case errors.Is(err, services.ErrSelfPromotionDenied):
			return response.BadRequest(c, "You cannot promote yourself!")
		case errors.Is(err, services.ErrAccountNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update role")
		}
	}

	return response.Success(c, message, fiber.Map{
		"user": account,
	})
}

// List handles user listing
// @Summary List accounts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.userService.ListUsers(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", result)
}

// Delete handles account deletion (self, or anyone for admins)
// @Summary Delete an account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actorID, ok := c.Locals("accountID").(uint)
	if !ok {
		return response.Unauthorized(c, "Token not provided")
	}
	actorRole, _ := c.Locals("role").(string)

	targetID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || targetID == 0 {
		return response.BadRequest(c, "Invalid account ID")
	}

	err = h.userService.DeleteUser(c.Context(), actorID, actorRole, uint(targetID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCannotDeleteOther):
			return response.Forbidden(c, "You can only delete your own account")
		case errors.Is(err, services.ErrAccountNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to delete account")
		}
	}

	return response.Success(c, "Account deleted", nil)
}
