package handlers

import (
	"net/http"

	"eggmart/internal/common"
	"eggmart/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles the admin login endpoint.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents the admin login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies the admin credentials and returns a bearer token.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendClientError(c, err.Error())
	}
	if req.Password == "" {
		return common.SendClientError(c, "password is required")
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return common.SendUnauthorizedError(c)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": token,
	})
}
