package domain

import "time"

// Category classifies auctions. Names are unique.
type Category struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// CategorySummary is the embedded projection returned with auction details.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tribunal is a court an auction or user is attached to.
type Tribunal struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
	City string `json:"city,omitempty" bson:"city,omitempty"`
}

// Country is a lookup entry for user registration.
type Country struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
	Code string `json:"code,omitempty" bson:"code,omitempty"`
}

// City belongs to a country.
type City struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name"`
	CountryID string `json:"country_id" bson:"country_id"`
}

// CreditOrganism is a lending institution users may be affiliated with.
type CreditOrganism struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}
