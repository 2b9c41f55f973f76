package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// UserHandler covers profile self-service and admin moderation endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	PhoneNumber      *string `json:"phone_number"`
	Address          *string `json:"address"`
	CIN              *string `json:"cin"`
	TribunalID       *string `json:"tribunal_id"`
	CountryID        *string `json:"country_id"`
	CityID           *string `json:"city_id"`
	ForeignCity      *string `json:"foreign_city"`
	CreditOrganismID *string `json:"credit_organism_id"`
	CommerceRegistry *string `json:"commerce_registry"`
	CompanyName      *string `json:"company_name"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type setFlagRequest struct {
	Value bool `json:"value"`
}

type listUsersResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if !actor.CanManage(id) {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /v1/users/:id.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User ID"
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), c.Param("id"), ports.ProfilePatch{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		CIN:              req.CIN,
		TribunalID:       req.TribunalID,
		CountryID:        req.CountryID,
		CityID:           req.CityID,
		ForeignCity:      req.ForeignCity,
		CreditOrganismID: req.CreditOrganismID,
		CommerceRegistry: req.CommerceRegistry,
		CompanyName:      req.CompanyName,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /v1/admin/users.
//
// @Summary      List non-admin accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "Filter by role"
// @Param        search  query     string  false  "Partial match on email or name"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listUsersResponse
// @Failure      403     {object}  map[string]string
// @Router       /v1/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListUsersFilter{
		Role:   c.QueryParam("role"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// SetRole handles PUT /v1/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User ID"
// @Param        body  body      setRoleRequest  true  "New role (synonyms accepted)"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/users/{id}/role [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.SetRole(c.Request().Context(), c.Param("id"), req.Role, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetBlocked handles PUT /v1/admin/users/:id/block.
//
// @Summary      Block or unblock an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User ID"
// @Param        body  body      setFlagRequest  true  "true to block"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/users/{id}/block [put]
func (h *UserHandler) SetBlocked(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req setFlagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.SetBlocked(c.Request().Context(), c.Param("id"), req.Value, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetActive handles PUT /v1/admin/users/:id/active.
//
// @Summary      Activate or deactivate an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User ID"
// @Param        body  body      setFlagRequest  true  "true to activate"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/users/{id}/active [put]
func (h *UserHandler) SetActive(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req setFlagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.SetActive(c.Request().Context(), c.Param("id"), req.Value, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
