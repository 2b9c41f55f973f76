package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// BidHandler handles HTTP requests for bid operations.
type BidHandler struct {
	service ports.BidService
}

func NewBidHandler(service ports.BidService) *BidHandler {
	return &BidHandler{service: service}
}

type placeBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type listBidsResponse struct {
	Data       []*domain.Bid      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type listAuctionBidsResponse struct {
	Data       []*ports.BidWithBidder `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}

// Place handles POST /v1/auctions/:id/bids.
//
// @Summary      Place a bid on an active auction
// @Tags         bids
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Auction ID"
// @Param        body  body      placeBidRequest  true  "Bid amount"
// @Success      201   {object}  domain.Bid
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/auctions/{id}/bids [post]
func (h *BidHandler) Place(c echo.Context) error {
	bidder, err := currentUser(c)
	if err != nil {
		return err
	}

	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	bid, err := h.service.Place(c.Request().Context(), c.Param("id"), req.Amount, bidder)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bid)
}

// Highest handles GET /v1/auctions/:id/bids/highest.
//
// @Summary      Get the current winning bid
// @Tags         bids
// @Produce      json
// @Param        id   path      string  true  "Auction ID"
// @Success      200  {object}  domain.Bid
// @Failure      404  {object}  map[string]string
// @Router       /v1/auctions/{id}/bids/highest [get]
func (h *BidHandler) Highest(c echo.Context) error {
	bid, err := h.service.Highest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bid)
}

// ListForAuction handles GET /v1/auctions/:id/bids.
//
// @Summary      List the bids of an auction
// @Tags         bids
// @Produce      json
// @Param        id     path      string  true   "Auction ID"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  listAuctionBidsResponse
// @Router       /v1/auctions/{id}/bids [get]
func (h *BidHandler) ListForAuction(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListForAuction(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAuctionBidsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// ListMine handles GET /v1/bids/mine.
//
// @Summary      List the authenticated user's bids
// @Tags         bids
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listBidsResponse
// @Failure      401    {object}  map[string]string
// @Router       /v1/bids/mine [get]
func (h *BidHandler) ListMine(c echo.Context) error {
	bidder, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListForBidder(c.Request().Context(), bidder.ID, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListBidsResponse(result))
}

func toListBidsResponse(result *ports.ListBidsResult) listBidsResponse {
	return listBidsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}
}
