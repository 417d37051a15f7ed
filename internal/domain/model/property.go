package model

import (
	"time"
)

type PropertyType string
type PropertyStatus string

const (
	TypeCasa         PropertyType = "Casa"
	TypeCampo        PropertyType = "Campo"
	TypeDepartamento PropertyType = "Departamento"
	TypeDesarrollo   PropertyType = "Desarrollo"
	TypeLocal        PropertyType = "Local"
	TypeTerreno      PropertyType = "Terreno"
	TypeOficina      PropertyType = "Oficina"

	StatusEnVenta    PropertyStatus = "En venta"
	StatusEnAlquiler PropertyStatus = "En alquiler"
	StatusReservado  PropertyStatus = "Reservado"
	StatusVendido    PropertyStatus = "Vendido"
	StatusAlquilado  PropertyStatus = "Alquilado"
)

// ValidPropertyType reports whether t is one of the accepted listing types.
// The empty string is allowed: type is optional on a listing.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case "", TypeCasa, TypeCampo, TypeDepartamento, TypeDesarrollo, TypeLocal, TypeTerreno, TypeOficina:
		return true
	}
	return false
}

func ValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case "", StatusEnVenta, StatusEnAlquiler, StatusReservado, StatusVendido, StatusAlquilado:
		return true
	}
	return false
}

// Property is a single real-estate listing. JSON field names match the wire
// format the admin panel and public site consume (camelCase, price in USD).
type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	PriceUSD    float64        `json:"priceUsd"`
	Type        PropertyType   `json:"type,omitempty"`
	Status      PropertyStatus `json:"status,omitempty"`
	Address     string         `json:"address,omitempty"`
	Bedrooms    *int           `json:"bedrooms,omitempty"`
	Bathrooms   *int           `json:"bathrooms,omitempty"`
	Lat         *float64       `json:"lat,omitempty"`
	Lng         *float64       `json:"lng,omitempty"`
	Images      []string       `json:"images"`
	Featured    bool           `json:"featured"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ListingSort string

const (
	SortNewest    ListingSort = "newest"
	SortPriceAsc  ListingSort = "price_asc"
	SortPriceDesc ListingSort = "price_desc"
)

// ListingFilter narrows a property listing. Zero values mean "no filter";
// price bounds are inclusive.
type ListingFilter struct {
	Type     PropertyType
	Status   PropertyStatus
	Featured *bool
	MinPrice *float64
	MaxPrice *float64
	Sort     ListingSort
}
