package handler

// respond.go centralizes the small JSON error bodies shared by the CRUD
// handlers so every endpoint speaks the same vocabulary.

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Could not find Entity"})
}

func malformed(c echo.Context, msg string) error {
	if msg == "" {
		msg = "Malformed Request"
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func missingBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Malformed Request Body is missing"})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server Error"})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authorization Header is missing or Invalid"})
}

func conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, echo.Map{"error": msg})
}
