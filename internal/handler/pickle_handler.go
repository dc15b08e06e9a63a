package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"picklestore/internal/config"
	"picklestore/internal/middleware"
	"picklestore/internal/usecase"
)

type PickleHandler struct {
	pickleUsecase *usecase.PickleUsecase
}

func NewPickleHandler(pickleUsecase *usecase.PickleUsecase) *PickleHandler {
	return &PickleHandler{pickleUsecase: pickleUsecase}
}

func (h *PickleHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/api/pickles", h.List)
	e.GET("/api/pickles/categories", h.ListCategories)
	e.GET("/api/pickles/:id", h.Detail)

	auth := e.Group("/api", middleware.AuthJWT(cfg))
	auth.POST("/pickles/:id/reviews", h.AddReview)
}

func (h *PickleHandler) List(c echo.Context) error {
	out, err := h.pickleUsecase.ListPickles(c.Request().Context(), usecase.ListPicklesInput{
		Category: c.QueryParam("category"),
		Q:        c.QueryParam("q"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PickleHandler) ListCategories(c echo.Context) error {
	cats, err := h.pickleUsecase.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"categories": cats})
}

func (h *PickleHandler) Detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.pickleUsecase.GetPickleDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type addReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *PickleHandler) AddReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	review, err := h.pickleUsecase.AddReview(c.Request().Context(), getUserIDFromContext(c), id, usecase.AddReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// savePickleRequest is shared by the admin create/update endpoints.
type savePickleRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Stock       int64           `json:"stock"`
}
