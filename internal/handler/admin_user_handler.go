package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"picklestore/internal/config"
	"picklestore/internal/domain/model"
	"picklestore/internal/middleware"
	"picklestore/internal/repository"
	"picklestore/internal/usecase"
)

// AdminUserHandler also serves the dashboard and the audit log, which
// share the admin usecase.
type AdminUserHandler struct {
	adminUsecase *usecase.AdminUsecase
}

func NewAdminUserHandler(adminUsecase *usecase.AdminUsecase) *AdminUserHandler {
	return &AdminUserHandler{adminUsecase: adminUsecase}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/admin", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("/users", h.ListUsers)
	g.PUT("/users/:id/role", h.UpdateRole)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/audit-logs", h.ListAuditLogs)
}

func (h *AdminUserHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUsecase.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *AdminUserHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	if err := h.adminUsecase.UpdateUserRole(c.Request().Context(), getUserIDFromContext(c), id, usecase.UpdateUserRoleInput{
		Role: req.Role,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminUserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.adminUsecase.DeleteUser(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminUserHandler) Dashboard(c echo.Context) error {
	out, err := h.adminUsecase.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) ListAuditLogs(c echo.Context) error {
	var f repository.AuditLogFilter

	if v := c.QueryParam("actor_user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ActorUserID = &id
		}
	}
	if v := c.QueryParam("action"); v != "" {
		action := model.AuditAction(v)
		f.Action = &action
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}
	if v := c.QueryParam("resource_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ResourceID = &id
		}
	}
	if v := c.QueryParam("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedFrom = &t
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedTo = &t
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("offset"); v != "" {
		f.Offset, _ = strconv.Atoi(v)
	}

	logs, err := h.adminUsecase.ListAuditLogs(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"audit_logs": logs})
}
