package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"picklestore/internal/config"
	"picklestore/internal/middleware"
	"picklestore/internal/usecase"
)

type ContactHandler struct {
	contactUsecase *usecase.ContactUsecase
}

func NewContactHandler(contactUsecase *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{contactUsecase: contactUsecase}
}

func (h *ContactHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/api/contact", h.Submit)

	admin := e.Group("/api/admin", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	admin.GET("/contacts", h.List)
}

func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.contactUsecase.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"contacts": contacts})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	created, err := h.contactUsecase.Submit(c.Request().Context(), usecase.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}
