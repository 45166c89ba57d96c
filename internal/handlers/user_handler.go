package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/services"
	"github.com/SAP-F-2025/hostel-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListUsers returns every entry of the role distribution
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(users))
}

// GetRoleFlags reports whether email is an admin or a teacher
// @Router /users/{email} [get]
func (h *UserHandler) GetRoleFlags(c *gin.Context) {
	email := c.Param("email")
	h.LogRequest(c, "Getting role flags", "email", email)

	flags, err := h.service.RoleFlags(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, flags)
}

// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	h.LogRequest(c, "Creating user")

	var user models.User
	if !h.bindJSON(c, &user) {
		return
	}

	ack, err := h.service.Create(c.Request.Context(), &user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}

// UpsertUser merges the body into the user with the same email, creating it when absent
// @Router /users [put]
func (h *UserHandler) UpsertUser(c *gin.Context) {
	h.LogRequest(c, "Upserting user")

	var user models.User
	if !h.bindJSON(c, &user) {
		return
	}

	ack, err := h.service.Upsert(c.Request.Context(), &user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}

// @Router /users/admin [put]
func (h *UserHandler) MakeAdmin(c *gin.Context) {
	h.assignRole(c, models.RoleAdmin)
}

// @Router /users/teacher [put]
func (h *UserHandler) MakeTeacher(c *gin.Context) {
	h.assignRole(c, models.RoleTeacher)
}

func (h *UserHandler) assignRole(c *gin.Context, role models.UserRole) {
	h.LogRequest(c, "Assigning role", "role", role)

	var req services.RoleAssignRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ack, err := h.service.AssignRole(c.Request.Context(), &req, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}
