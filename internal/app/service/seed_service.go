package service

import (
	"context"
	"errors"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/domain/model"
	"inmobiliaria_api/internal/domain/repository"
	"inmobiliaria_api/internal/platform/config"

	"github.com/rs/zerolog/log"
)

// SeedService bootstraps the database on first start: one admin account if
// none exists, and a handful of sample listings when the store is empty.
type SeedService struct {
	authService     *AuthService
	userRepo        repository.UserRepository
	propertyService *PropertyService
	cfg             *config.Config
}

func NewSeedService(
	authService *AuthService,
	userRepo repository.UserRepository,
	propertyService *PropertyService,
	cfg *config.Config,
) *SeedService {
	return &SeedService{
		authService:     authService,
		userRepo:        userRepo,
		propertyService: propertyService,
		cfg:             cfg,
	}
}

// Run never aborts startup: a seed failure is logged and the server keeps
// serving whatever already exists.
func (s *SeedService) Run(ctx context.Context) {
	if s.cfg.IsProduction() && !s.cfg.AllowSeeding {
		log.Info().Msg("seeding disabled in production")
		return
	}

	s.seedAdmin(ctx)
	s.seedProperties(ctx)
}

func (s *SeedService) seedAdmin(ctx context.Context) {
	exists, err := s.userRepo.AdminExists(ctx)
	if err != nil {
		log.Error().Err(err).Msg("seed: could not check for admin account")
		return
	}
	if exists {
		log.Info().Msg("seed: admin account already exists")
		return
	}

	if s.cfg.AdminPassword == "" {
		log.Error().Msg("seed: ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}

	user, err := s.authService.CreateUser(ctx,
		s.cfg.AdminUsername, s.cfg.AdminEmail, s.cfg.AdminPassword, model.RoleAdmin)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			log.Info().Msg("seed: admin account already exists")
			return
		}
		log.Error().Err(err).Msg("seed: could not create admin account")
		return
	}
	log.Info().Str("username", user.Username).Str("email", user.Email).Msg("seed: admin account created")
}

func (s *SeedService) seedProperties(ctx context.Context) {
	existing, err := s.propertyService.List(ctx, model.ListingFilter{})
	if err != nil {
		log.Error().Err(err).Msg("seed: could not list properties")
		return
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("seed: properties already present")
		return
	}

	created := 0
	for _, sample := range sampleProperties() {
		if _, err := s.propertyService.Create(ctx, sample); err != nil {
			log.Error().Err(err).Str("title", sample.Title).Msg("seed: could not create sample property")
			continue
		}
		created++
	}
	log.Info().Int("count", created).Msg("seed: sample properties created")
}

func sampleProperties() []CreatePropertyRequest {
	price := func(v float64) *float64 { return &v }
	count := func(v int) *int { return &v }
	coord := func(v float64) *float64 { return &v }

	return []CreatePropertyRequest{
		{
			Title:       "Departamento en Palermo",
			Description: "2 ambientes luminosos cerca de parques y polo gastronómico.",
			PriceUSD:    price(150000),
			Address:     "Cerviño 4800, Palermo, CABA",
			Bedrooms:    count(2),
			Bathrooms:   count(1),
			Lat:         coord(-34.573),
			Lng:         coord(-58.419),
			Images: []string{
				"https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?q=80&w=1200&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1549187774-b4e9b0445b41?q=80&w=1200&auto=format&fit=crop",
			},
			Featured: true,
			Type:     model.TypeDepartamento,
			Status:   model.StatusEnVenta,
		},
		{
			Title:       "Casa en barrio privado",
			Description: "3 dormitorios, jardín y cochera. Seguridad 24 hs.",
			PriceUSD:    price(260000),
			Address:     "Barrio Las Lomas, Zona Norte",
			Bedrooms:    count(3),
			Bathrooms:   count(2),
			Images: []string{
				"https://images.unsplash.com/photo-1616594039964-ae9021a400a0?q=80&w=1200&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1600585154084-4e5fe7c39198?q=80&w=1200&auto=format&fit=crop",
			},
			Type:   model.TypeCasa,
			Status: model.StatusEnVenta,
		},
		{
			Title:       "Local comercial céntrico",
			Description: "Excelente vidriera y tránsito peatonal.",
			PriceUSD:    price(1200),
			Address:     "Av. Corrientes 1500, CABA",
			Images: []string{
				"https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?q=80&w=1200&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1521737604893-d14cc237f11d?q=80&w=1200&auto=format&fit=crop",
			},
			Type:   model.TypeLocal,
			Status: model.StatusEnAlquiler,
		},
		{
			Title:       "Terreno en las afueras",
			Description: "Excelente ubicación para desarrollo inmobiliario.",
			PriceUSD:    price(50000),
			Address:     "Ruta 8, Zona Oeste",
			Images: []string{
				"https://images.unsplash.com/photo-1500382017468-9049fed747ef?q=80&w=1200&auto=format&fit=crop",
			},
			Featured: true,
			Type:     model.TypeTerreno,
			Status:   model.StatusEnVenta,
		},
	}
}
