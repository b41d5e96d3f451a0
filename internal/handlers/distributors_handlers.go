package handlers

import (
	"net/http"

	"eggmart/internal/common"
	"eggmart/internal/forms"
	"eggmart/internal/services"

	"github.com/labstack/echo/v4"
)

// DistributorHandlers handles distributor-related HTTP requests
type DistributorHandlers struct {
	distributorService services.DistributorService
}

// NewDistributorHandlers creates a new distributor handlers instance
func NewDistributorHandlers(distributorService services.DistributorService) *DistributorHandlers {
	return &DistributorHandlers{
		distributorService: distributorService,
	}
}

// ListDistributors returns the full record list, newest first.
func (h *DistributorHandlers) ListDistributors(c echo.Context) error {
	ctx := c.Request().Context()

	records := h.distributorService.List(ctx)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"distributors": records,
		"count":        len(records),
	})
}

// CreateDistributorRequest carries the add-distributor form fields. The
// password pair is validated and then discarded.
type CreateDistributorRequest struct {
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Module          string `json:"module"`
}

// CreateDistributor handles an add-distributor form submission.
func (h *DistributorHandlers) CreateDistributor(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateDistributorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	rec, ferrs := h.distributorService.Submit(ctx, forms.Input{
		FullName:        req.FullName,
		Phone:           req.Phone,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Module:          req.Module,
	})
	if len(ferrs) > 0 {
		return common.SendValidationError(c, ferrs)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"distributor": rec,
		"message":     forms.SuccessMessage,
	})
}

// DeleteDistributor removes a record by id. The destructive action must be
// confirmed explicitly with ?confirm=true.
func (h *DistributorHandlers) DeleteDistributor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ParseRecordID(c.Param("id"), "distributor id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if c.QueryParam("confirm") != "true" {
		return common.SendClientError(c, "Deletion must be confirmed with confirm=true")
	}

	if !h.distributorService.Remove(ctx, id) {
		return common.SendNotFoundError(c, "Distributor")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Distributor deleted successfully",
	})
}
