package model

// PropertyPatch carries the fields of a partial update. Nil means "leave
// unchanged". ID and CreatedAt are deliberately absent: they are immutable.
type PropertyPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	PriceUSD    *float64        `json:"priceUsd,omitempty"`
	Type        *PropertyType   `json:"type,omitempty"`
	Status      *PropertyStatus `json:"status,omitempty"`
	Address     *string         `json:"address,omitempty"`
	Bedrooms    *int            `json:"bedrooms,omitempty"`
	Bathrooms   *int            `json:"bathrooms,omitempty"`
	Lat         *float64        `json:"lat,omitempty"`
	Lng         *float64        `json:"lng,omitempty"`
	Images      *[]string       `json:"images,omitempty"`
	Featured    *bool           `json:"featured,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PropertyPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.PriceUSD == nil &&
		p.Type == nil && p.Status == nil && p.Address == nil &&
		p.Bedrooms == nil && p.Bathrooms == nil && p.Lat == nil &&
		p.Lng == nil && p.Images == nil && p.Featured == nil
}

// Apply merges the patch over an existing property, preserving ID and
// CreatedAt. Used by the flat-file store; the SQL store merges in place.
func (p PropertyPatch) Apply(existing *Property) {
	if p.Title != nil {
		existing.Title = *p.Title
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	if p.PriceUSD != nil {
		existing.PriceUSD = *p.PriceUSD
	}
	if p.Type != nil {
		existing.Type = *p.Type
	}
	if p.Status != nil {
		existing.Status = *p.Status
	}
	if p.Address != nil {
		existing.Address = *p.Address
	}
	if p.Bedrooms != nil {
		existing.Bedrooms = p.Bedrooms
	}
	if p.Bathrooms != nil {
		existing.Bathrooms = p.Bathrooms
	}
	if p.Lat != nil {
		existing.Lat = p.Lat
	}
	if p.Lng != nil {
		existing.Lng = p.Lng
	}
	if p.Images != nil {
		existing.Images = *p.Images
	}
	if p.Featured != nil {
		existing.Featured = *p.Featured
	}
}
