package handler

import (
	"testing"
)

func TestToAuctionPatchPresence(t *testing.T) {
	body := []byte(`{"title": "Villa saisie", "description": null, "starting_price": 250000}`)

	patch, err := toAuctionPatch(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, key := range []string{"title", "description", "starting_price"} {
		if _, ok := patch.Fields[key]; !ok {
			t.Errorf("field %q missing from presence set", key)
		}
	}
	if _, ok := patch.Fields["location"]; ok {
		t.Error("absent key must not appear in presence set")
	}

	if patch.Title == nil || *patch.Title != "Villa saisie" {
		t.Errorf("title = %v", patch.Title)
	}
	// Explicit null decodes to a nil pointer while the key stays present.
	if patch.Description != nil {
		t.Errorf("description = %v, want nil", patch.Description)
	}
	if patch.StartingPrice == nil || *patch.StartingPrice != 250000 {
		t.Errorf("starting price = %v", patch.StartingPrice)
	}
}

func TestToAuctionPatchSpecifications(t *testing.T) {
	body := []byte(`{"specifications": [{"property": "Surface", "value": "320 m²"}]}`)

	patch, err := toAuctionPatch(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(patch.Specifications) != 1 || patch.Specifications[0].Property != "Surface" {
		t.Fatalf("specifications = %+v", patch.Specifications)
	}

	// No specifications key means no replacement.
	patch, err = toAuctionPatch([]byte(`{"title": "x"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if patch.Specifications != nil {
		t.Error("specifications must stay nil when the key is absent")
	}
}

func TestToAuctionPatchRejectsMalformed(t *testing.T) {
	if _, err := toAuctionPatch([]byte(`{"title": 42}`)); err == nil {
		t.Error("type mismatch must fail")
	}
	if _, err := toAuctionPatch([]byte(`not json`)); err == nil {
		t.Error("malformed body must fail")
	}
}
