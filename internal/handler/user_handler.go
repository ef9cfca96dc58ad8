package handler

import (
	"github.com/gin-gonic/gin"

	"amorlias/internal/service"
)

// UserHandler handles admin account management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /api/v1/admin/users
// @Summary List accounts
// @Tags users
// @Produce json
// @Param search query string false "Email or name substring"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.User,meta=PagMeta}
// @Security BearerAuth
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	users, total, err := h.userService.List(c.Request.Context(), c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, users, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/admin/users/:id
// @Summary Get an account
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} Response{data=domain.User}
// @Failure 404 {object} ErrorResponseBody "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, user)
}

// UpdateRole handles PUT /api/v1/admin/users/:id/role
// @Summary Change an account's role
// @Description The user receives a role_change notification. Admins cannot change their own role.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param request body service.ChangeRoleInput true "New role"
// @Success 200 {object} Response{data=domain.User}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Own role"
// @Failure 404 {object} ErrorResponseBody "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "user")
	if !ok {
		return
	}
	var input service.ChangeRoleInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), actorID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, user)
}
