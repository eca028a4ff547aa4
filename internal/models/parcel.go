package models

import (
	"encoding/json"
	"time"
)

// LandParcel is one registered land parcel. GeoJSON holds the raw boundary
// geometry as stored; the service assembles feature collections from it.
type LandParcel struct {
	ID           string          `db:"id" json:"id"`
	ParcelNumber string          `db:"parcel_number" json:"parcel_number"`
	Address      *string         `db:"address" json:"address,omitempty"`
	AreaSqm      *float64        `db:"area_sqm" json:"area_sqm,omitempty"`
	OwnerName    *string         `db:"owner_name" json:"owner_name,omitempty"`
	ZoningCode   *string         `db:"zoning_code" json:"zoning_code,omitempty"`
	GeoJSON      json.RawMessage `db:"geojson" json:"geojson,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// LandParcelFilter constrains parcel listing.
type LandParcelFilter struct {
	ParcelNumber string
	ZoningCode   string
	Search       string
	Limit        int
	Offset       int
}

// GeoJSONFeature is one feature in a map layer payload.
type GeoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// GeoJSONFeatureCollection wraps features for map consumption.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}
