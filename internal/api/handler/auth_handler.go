package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// AuthHandler handles registration, login and credential changes.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	Role             string `json:"role"`
	PhoneNumber      string `json:"phone_number"`
	Address          string `json:"address"`
	CIN              string `json:"cin"`
	TribunalID       string `json:"tribunal_id"`
	CountryID        string `json:"country_id"`
	CityID           string `json:"city_id"`
	ForeignCity      string `json:"foreign_city"`
	CreditOrganismID string `json:"credit_organism_id"`
	CommerceRegistry string `json:"commerce_registry"`
	CompanyName      string `json:"company_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Register handles POST /v1/auth/register.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Role:             req.Role,
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
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /v1/auth/login.
//
// @Summary      Authenticate and obtain a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Me handles GET /v1/auth/me.
//
// @Summary      Return the authenticated account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword handles PUT /v1/auth/password.
//
// @Summary      Change the current account password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204   "password changed"
// @Failure      401   {object}  map[string]string
// @Router       /v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
