package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// AuctionHandler handles HTTP requests for auction operations.
type AuctionHandler struct {
	service ports.AuctionService
}

func NewAuctionHandler(service ports.AuctionService) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// Create handles POST /v1/auctions.
//
// @Summary      Create an auction listing
// @Tags         auctions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAuctionRequest  true  "Listing details"
// @Success      201   {object}  domain.Auction
// @Failure      422   {object}  map[string]string
// @Router       /v1/auctions [post]
func (h *AuctionHandler) Create(c echo.Context) error {
	creator, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createAuctionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	auction, err := h.service.Create(c.Request().Context(), toCreateAuctionInput(req), creator)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, auction)
}

// Get handles GET /v1/auctions/:id.
//
// @Summary      Get an auction with bid stats
// @Tags         auctions
// @Produce      json
// @Param        id   path      string  true  "Auction ID"
// @Success      200  {object}  auctionDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/auctions/{id} [get]
func (h *AuctionHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"), viewer(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuctionDetailResponse(detail))
}

// List handles GET /v1/auctions.
//
// @Summary      List auctions
// @Tags         auctions
// @Produce      json
// @Param        category_id  query     string   false  "Filter by category"
// @Param        status       query     string   false  "Filter by lifecycle status"
// @Param        auction_type query     string   false  "Filter by type"
// @Param        min_price    query     number   false  "Minimum starting price"
// @Param        max_price    query     number   false  "Maximum starting price"
// @Param        location     query     string   false  "Partial location match"
// @Param        featured     query     boolean  false  "Featured only"
// @Param        search       query     string   false  "Partial match on title or description"
// @Param        page         query     int      false  "Page (1-based)"
// @Param        limit        query     int      false  "Page size"
// @Success      200          {object}  listAuctionsResponse
// @Router       /v1/auctions [get]
func (h *AuctionHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)

	filter := ports.ListAuctionsFilter{
		CategoryID: c.QueryParam("category_id"),
		Status:     c.QueryParam("status"),
		Type:       c.QueryParam("auction_type"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Location:   c.QueryParam("location"),
		Search:     c.QueryParam("search"),
		Page:       page,
		Limit:      limit,
	}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "featured must be a boolean")
		}
		filter.Featured = &featured
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listAuctionsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Update handles PATCH /v1/auctions/:id.
//
// @Summary      Partially update an auction
// @Tags         auctions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Auction ID"
// @Param        body  body      updateAuctionRequest  true  "Fields to change; null clears optional fields"
// @Success      200   {object}  auctionDetailResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/auctions/{id} [patch]
func (h *AuctionHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	patch, err := toAuctionPatch(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), patch, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuctionDetailResponse(detail))
}

// UpdateStatus handles PUT /v1/auctions/:id/status.
//
// @Summary      Move an auction through its lifecycle
// @Tags         auctions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Auction ID"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Auction
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/auctions/{id}/status [put]
func (h *AuctionHandler) UpdateStatus(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	auction, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.AuctionStatus(req.Status), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, auction)
}

// Delete handles DELETE /v1/auctions/:id.
//
// @Summary      Delete an auction and its children
// @Tags         auctions
// @Security     BearerAuth
// @Param        id  path  string  true  "Auction ID"
// @Success      204  "deleted"
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/auctions/{id} [delete]
func (h *AuctionHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
