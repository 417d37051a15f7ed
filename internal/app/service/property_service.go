package service

import (
	"context"
	"strings"
	"time"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/domain/model"
	"inmobiliaria_api/internal/domain/repository"
	"inmobiliaria_api/internal/platform/cache"

	"github.com/google/uuid"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	maxAddressLen     = 300
	maxRooms          = 50
)

type PropertyService struct {
	propertyRepo repository.PropertyRepository
	listingCache cache.ListingCache
}

func NewPropertyService(propertyRepo repository.PropertyRepository, listingCache cache.ListingCache) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo, listingCache: listingCache}
}

type CreatePropertyRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	PriceUSD    *float64             `json:"priceUsd"`
	Type        model.PropertyType   `json:"type"`
	Status      model.PropertyStatus `json:"status"`
	Address     string               `json:"address"`
	Bedrooms    *int                 `json:"bedrooms"`
	Bathrooms   *int                 `json:"bathrooms"`
	Lat         *float64             `json:"lat"`
	Lng         *float64             `json:"lng"`
	Images      []string             `json:"images"`
	Featured    bool                 `json:"featured"`
}

func (s *PropertyService) List(ctx context.Context, filter model.ListingFilter) ([]model.Property, error) {
	if cached, ok := s.listingCache.Get(ctx, filter); ok {
		return cached, nil
	}
	properties, err := s.propertyRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.listingCache.Set(ctx, filter, properties)
	return properties, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*model.Property, error) {
	return s.propertyRepo.FindByID(ctx, id)
}

func (s *PropertyService) Create(ctx context.Context, req CreatePropertyRequest) (*model.Property, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, common.Errorf("el título es requerido: %w", common.ErrValidation)
	}
	if req.PriceUSD == nil {
		return nil, common.Errorf("el precio es requerido: %w", common.ErrValidation)
	}
	if err := validateFields(title, req.Description, req.Address, *req.PriceUSD,
		req.Type, req.Status, req.Bedrooms, req.Bathrooms, req.Lat, req.Lng); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusEnVenta
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	property := &model.Property{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		PriceUSD:    *req.PriceUSD,
		Type:        req.Type,
		Status:      status,
		Address:     strings.TrimSpace(req.Address),
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Images:      images,
		Featured:    req.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	s.listingCache.Invalidate(ctx)
	return property, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}

	property, err := s.propertyRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.listingCache.Invalidate(ctx)
	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.listingCache.Invalidate(ctx)
	return nil
}

func validatePatch(patch model.PropertyPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return common.Errorf("el título no puede quedar vacío: %w", common.ErrValidation)
	}
	title, description, address := "", "", ""
	price := 0.0
	if patch.Title != nil {
		title = *patch.Title
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	if patch.Address != nil {
		address = *patch.Address
	}
	if patch.PriceUSD != nil {
		price = *patch.PriceUSD
	}
	var propertyType model.PropertyType
	var status model.PropertyStatus
	if patch.Type != nil {
		propertyType = *patch.Type
	}
	if patch.Status != nil {
		status = *patch.Status
	}
	return validateFields(title, description, address, price,
		propertyType, status, patch.Bedrooms, patch.Bathrooms, patch.Lat, patch.Lng)
}

func validateFields(
	title, description, address string,
	price float64,
	propertyType model.PropertyType,
	status model.PropertyStatus,
	bedrooms, bathrooms *int,
	lat, lng *float64,
) error {
	if len(title) > maxTitleLen {
		return common.Errorf("el título supera los %d caracteres: %w", maxTitleLen, common.ErrValidation)
	}
	if len(description) > maxDescriptionLen {
		return common.Errorf("la descripción supera los %d caracteres: %w", maxDescriptionLen, common.ErrValidation)
	}
	if len(address) > maxAddressLen {
		return common.Errorf("la dirección supera los %d caracteres: %w", maxAddressLen, common.ErrValidation)
	}
	if price < 0 {
		return common.Errorf("el precio debe ser un número no negativo: %w", common.ErrValidation)
	}
	if !model.ValidPropertyType(propertyType) {
		return common.Errorf("tipo de propiedad inválido %q: %w", propertyType, common.ErrValidation)
	}
	if !model.ValidPropertyStatus(status) {
		return common.Errorf("estado de propiedad inválido %q: %w", status, common.ErrValidation)
	}
	if bedrooms != nil && (*bedrooms < 0 || *bedrooms > maxRooms) {
		return common.Errorf("dormitorios fuera de rango: %w", common.ErrValidation)
	}
	if bathrooms != nil && (*bathrooms < 0 || *bathrooms > maxRooms) {
		return common.Errorf("baños fuera de rango: %w", common.ErrValidation)
	}
	if (lat == nil) != (lng == nil) {
		return common.Errorf("lat y lng deben enviarse juntos: %w", common.ErrValidation)
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return common.Errorf("lat fuera de rango: %w", common.ErrValidation)
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return common.Errorf("lng fuera de rango: %w", common.ErrValidation)
	}
	return nil
}
