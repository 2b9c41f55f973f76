package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// DepositHandler handles the caution submission and review endpoints.
type DepositHandler struct {
	service ports.DepositService
}

func NewDepositHandler(service ports.DepositService) *DepositHandler {
	return &DepositHandler{service: service}
}

type reviewDepositRequest struct {
	Status       string `json:"status" validate:"required,oneof=confirmed rejected"`
	AdminMessage string `json:"admin_message"`
}

type listDepositsResponse struct {
	Data       []*domain.Deposit  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Submit handles POST /v1/deposits. The payload is multipart form data so the
// receipt file can ride along with the fields.
//
// @Summary      Submit a caution for an auction
// @Tags         deposits
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        auction_id  formData  string  true   "Auction ID"
// @Param        amount      formData  number  true   "Amount paid"
// @Param        method      formData  string  true   "Payment method (bank, card, wallet)"
// @Param        receipt     formData  file    false  "Receipt file"
// @Success      201         {object}  domain.Deposit
// @Failure      404         {object}  map[string]string
// @Failure      422         {object}  map[string]string
// @Router       /v1/deposits [post]
func (h *DepositHandler) Submit(c echo.Context) error {
	submitter, err := currentUser(c)
	if err != nil {
		return err
	}

	amount, _ := strconv.ParseFloat(c.FormValue("amount"), 64)
	input := ports.SubmitDepositInput{
		AuctionID: c.FormValue("auction_id"),
		Amount:    amount,
		Method:    domain.DepositMethod(c.FormValue("method")),
	}

	if file, err := c.FormFile("receipt"); err == nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable receipt file")
		}
		defer src.Close()
		input.ReceiptName = file.Filename
		input.Receipt = src
	}

	deposit, err := h.service.Submit(c.Request().Context(), input, submitter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, deposit)
}

// ListMine handles GET /v1/deposits/mine.
//
// @Summary      List the authenticated user's deposits
// @Tags         deposits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Deposit
// @Failure      401  {object}  map[string]string
// @Router       /v1/deposits/mine [get]
func (h *DepositHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	deposits, err := h.service.ListForUser(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deposits)
}

// List handles GET /v1/admin/deposits.
//
// @Summary      List deposits for review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        user_id     query     string  false  "Filter by submitter"
// @Param        auction_id  query     string  false  "Filter by auction"
// @Param        search      query     string  false  "Partial match on id, auction or submitter"
// @Param        page        query     int     false  "Page (1-based)"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  listDepositsResponse
// @Failure      403         {object}  map[string]string
// @Router       /v1/admin/deposits [get]
func (h *DepositHandler) List(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListForAdmin(c.Request().Context(), ports.ListDepositsFilter{
		Status:    c.QueryParam("status"),
		UserID:    c.QueryParam("user_id"),
		AuctionID: c.QueryParam("auction_id"),
		Search:    c.QueryParam("search"),
		Page:      page,
		Limit:     limit,
	}, admin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listDepositsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Review handles PUT /v1/admin/deposits/:id/review.
//
// @Summary      Confirm or reject a deposit
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Deposit ID"
// @Param        body  body      reviewDepositRequest  true  "Decision; admin_message required on rejection"
// @Success      200   {object}  domain.Deposit
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/deposits/{id}/review [put]
func (h *DepositHandler) Review(c echo.Context) error {
	reviewer, err := currentUser(c)
	if err != nil {
		return err
	}

	var req reviewDepositRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	deposit, err := h.service.Review(c.Request().Context(), c.Param("id"), ports.ReviewDepositInput{
		Status:       domain.DepositStatus(req.Status),
		AdminMessage: req.AdminMessage,
	}, reviewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deposit)
}

// Stats handles GET /v1/admin/deposits/stats.
//
// @Summary      Deposit counts by status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DepositStats
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/deposits/stats [get]
func (h *DepositHandler) Stats(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), admin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
