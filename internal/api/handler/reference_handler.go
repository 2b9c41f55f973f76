package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/service"
)

// ReferenceHandler serves categories and the static lookup lists.
type ReferenceHandler struct {
	service *service.ReferenceService
}

func NewReferenceHandler(svc *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: svc}
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateCategory handles POST /v1/admin/categories.
//
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/categories [post]
func (h *ReferenceHandler) CreateCategory(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	category, err := h.service.CreateCategory(c.Request().Context(), req.Name, req.Description, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// ListCategories handles GET /v1/categories.
//
// @Summary      List categories
// @Tags         reference
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /v1/categories [get]
func (h *ReferenceHandler) ListCategories(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// DeleteCategory handles DELETE /v1/admin/categories/:id.
//
// @Summary      Delete a category
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Category ID"
// @Success      204  "deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/categories/{id} [delete]
func (h *ReferenceHandler) DeleteCategory(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Tribunals handles GET /v1/reference/tribunals.
//
// @Summary      List tribunals
// @Tags         reference
// @Produce      json
// @Success      200  {array}  domain.Tribunal
// @Router       /v1/reference/tribunals [get]
func (h *ReferenceHandler) Tribunals(c echo.Context) error {
	tribunals, err := h.service.Tribunals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tribunals)
}

// Countries handles GET /v1/reference/countries.
//
// @Summary      List countries
// @Tags         reference
// @Produce      json
// @Success      200  {array}  domain.Country
// @Router       /v1/reference/countries [get]
func (h *ReferenceHandler) Countries(c echo.Context) error {
	countries, err := h.service.Countries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countries)
}

// Cities handles GET /v1/reference/cities.
//
// @Summary      List cities, optionally by country
// @Tags         reference
// @Produce      json
// @Param        country_id  query  string  false  "Country ID"
// @Success      200  {array}  domain.City
// @Router       /v1/reference/cities [get]
func (h *ReferenceHandler) Cities(c echo.Context) error {
	cities, err := h.service.Cities(c.Request().Context(), c.QueryParam("country_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cities)
}

// CreditOrganisms handles GET /v1/reference/credit-organisms.
//
// @Summary      List credit organisms
// @Tags         reference
// @Produce      json
// @Success      200  {array}  domain.CreditOrganism
// @Router       /v1/reference/credit-organisms [get]
func (h *ReferenceHandler) CreditOrganisms(c echo.Context) error {
	organisms, err := h.service.CreditOrganisms(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, organisms)
}
