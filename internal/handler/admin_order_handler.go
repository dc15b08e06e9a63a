package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"picklestore/internal/config"
	"picklestore/internal/middleware"
	"picklestore/internal/repository"
	"picklestore/internal/usecase"
)

type AdminOrderHandler struct {
	adminOrderUsecase *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(adminOrderUsecase *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{adminOrderUsecase: adminOrderUsecase}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/admin/orders", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("", h.List)
	g.PUT("/:id/status", h.UpdateStatus)
	g.DELETE("/:id", h.Delete)
}

func (h *AdminOrderHandler) List(c echo.Context) error {
	f := repository.AdminOrderListFilter{
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.UserID = &id
		}
	}

	out, err := h.adminOrderUsecase.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	if err := h.adminOrderUsecase.UpdateStatus(c.Request().Context(), getUserIDFromContext(c), id, usecase.AdminUpdateOrderStatusInput{
		Status: req.Status,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminOrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.adminOrderUsecase.Delete(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
