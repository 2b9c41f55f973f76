package handler

import (
	"encoding/json"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

func toCreateAuctionInput(req createAuctionRequest) ports.CreateAuctionInput {
	return ports.CreateAuctionInput{
		Title:           req.Title,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		StartingPrice:   req.StartingPrice,
		ReservePrice:    req.ReservePrice,
		IncrementAmount: req.IncrementAmount,
		Location:        req.Location,
		SellerName:      req.SellerName,
		TermsConditions: req.TermsConditions,
		ProductHistory:  req.ProductHistory,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Type:            domain.AuctionType(req.Type),
		Featured:        req.Featured,
		Specifications:  toSpecifications(req.Specifications),
		Images:          toImages(req.Images),
		Documents:       toDocuments(req.Documents),
	}
}

// toAuctionPatch pairs the typed decode with the raw key set, so the service
// can tell "key absent" apart from "key explicitly null".
func toAuctionPatch(body []byte) (ports.AuctionPatch, error) {
	var req updateAuctionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ports.AuctionPatch{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ports.AuctionPatch{}, err
	}
	fields := make(map[string]struct{}, len(raw))
	for k := range raw {
		fields[k] = struct{}{}
	}

	patch := ports.AuctionPatch{
		Title:           req.Title,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		StartingPrice:   req.StartingPrice,
		ReservePrice:    req.ReservePrice,
		IncrementAmount: req.IncrementAmount,
		Location:        req.Location,
		SellerName:      req.SellerName,
		TermsConditions: req.TermsConditions,
		ProductHistory:  req.ProductHistory,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Featured:        req.Featured,
		Fields:          fields,
	}
	if req.Type != nil {
		t := domain.AuctionType(*req.Type)
		patch.Type = &t
	}
	if req.Specifications != nil {
		patch.Specifications = toSpecifications(req.Specifications)
	}
	return patch, nil
}

func toAuctionDetailResponse(detail *ports.AuctionDetail) auctionDetailResponse {
	return auctionDetailResponse{
		Auction:    detail.Auction,
		HighestBid: detail.HighestBid,
		TotalBids:  detail.TotalBids,
		Category:   detail.Category,
	}
}

func toSpecifications(in []specificationRequest) []domain.Specification {
	if in == nil {
		return nil
	}
	out := make([]domain.Specification, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Specification{Property: s.Property, Value: s.Value})
	}
	return out
}

func toImages(in []imageRequest) []domain.Image {
	if in == nil {
		return nil
	}
	out := make([]domain.Image, 0, len(in))
	for _, img := range in {
		out = append(out, domain.Image{URL: img.URL, Position: img.Position, IsMain: img.IsMain})
	}
	return out
}

func toDocuments(in []documentRequest) []domain.Document {
	if in == nil {
		return nil
	}
	out := make([]domain.Document, 0, len(in))
	for _, d := range in {
		out = append(out, domain.Document{Name: d.Name, URL: d.URL, IsPublic: d.IsPublic})
	}
	return out
}
