package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"picklestore/internal/config"
	"picklestore/internal/middleware"
	"picklestore/internal/usecase"
)

type AdminPickleHandler struct {
	pickleUsecase *usecase.PickleUsecase
}

func NewAdminPickleHandler(pickleUsecase *usecase.PickleUsecase) *AdminPickleHandler {
	return &AdminPickleHandler{pickleUsecase: pickleUsecase}
}

func (h *AdminPickleHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/admin/pickles", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PUT("/:id/stock", h.SetStock)
}

func (h *AdminPickleHandler) Create(c echo.Context) error {
	var req savePickleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	created, err := h.pickleUsecase.CreatePickle(c.Request().Context(), usecase.SavePickleInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AdminPickleHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req savePickleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	updated, err := h.pickleUsecase.UpdatePickle(c.Request().Context(), id, usecase.SavePickleInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *AdminPickleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.pickleUsecase.DeletePickle(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type setStockRequest struct {
	Stock  int64  `json:"stock"`
	Reason string `json:"reason"`
}

func (h *AdminPickleHandler) SetStock(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	if err := h.pickleUsecase.SetStock(c.Request().Context(), getUserIDFromContext(c), id, usecase.SetStockInput{
		Stock:  req.Stock,
		Reason: req.Reason,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
