package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"picklestore/internal/middleware"
	"picklestore/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps usecase errors onto JSON responses. Anything that is
// not an HTTPError is treated as an internal failure and not leaked.
func writeError(c echo.Context, err error) error {
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

func getUserIDFromContext(c echo.Context) int64 {
	id, _ := c.Get(middleware.CtxUserIDKey).(int64)
	return id
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
