package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/domain/model"
)

type PropertyRepository interface {
	List(ctx context.Context, filter model.ListingFilter) ([]model.Property, error)
	FindByID(ctx context.Context, id string) (*model.Property, error)
	Create(ctx context.Context, property *model.Property) error
	// Update merges the patch over the stored record in a single atomic
	// write. ID and CreatedAt are never touched.
	Update(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error)
	Delete(ctx context.Context, id string) error
}

type pgPropertyRepository struct {
	db *sql.DB
}

func NewPgPropertyRepository(db *sql.DB) PropertyRepository {
	return &pgPropertyRepository{db: db}
}

const propertyColumns = `id, title, description, price_usd, type, status, address,
	       bedrooms, bathrooms, lat, lng, images, featured, created_at, updated_at`

func scanProperty(row interface{ Scan(...interface{}) error }) (*model.Property, error) {
	p := &model.Property{}
	var description, address sql.NullString
	var propertyType, status sql.NullString
	var imagesRaw []byte
	err := row.Scan(
		&p.ID, &p.Title, &description, &p.PriceUSD, &propertyType, &status, &address,
		&p.Bedrooms, &p.Bathrooms, &p.Lat, &p.Lng, &imagesRaw, &p.Featured,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Address = address.String
	p.Type = model.PropertyType(propertyType.String)
	p.Status = model.PropertyStatus(status.String)
	if len(imagesRaw) > 0 {
		if err := json.Unmarshal(imagesRaw, &p.Images); err != nil {
			return nil, fmt.Errorf("decoding images: %w", err)
		}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, nil
}

// buildListQuery builds the filtered listing query. Kept as a free function
// so the clause construction can be tested without a database.
func buildListQuery(filter model.ListingFilter) (string, []interface{}) {
	var query strings.Builder
	query.WriteString("SELECT " + propertyColumns + " FROM properties")

	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argID))
		args = append(args, filter.Type)
		argID++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}
	if filter.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("featured = $%d", argID))
		args = append(args, *filter.Featured)
		argID++
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price_usd >= $%d", argID))
		args = append(args, *filter.MinPrice)
		argID++
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price_usd <= $%d", argID))
		args = append(args, *filter.MaxPrice)
		argID++
	}

	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	switch filter.Sort {
	case model.SortPriceAsc:
		query.WriteString(" ORDER BY price_usd ASC, created_at DESC")
	case model.SortPriceDesc:
		query.WriteString(" ORDER BY price_usd DESC, created_at DESC")
	default:
		query.WriteString(" ORDER BY created_at DESC")
	}

	return query.String(), args
}

func (r *pgPropertyRepository) List(ctx context.Context, filter model.ListingFilter) ([]model.Property, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgPropertyRepository.List query: %w", err)
	}
	defer rows.Close()

	properties := []model.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("pgPropertyRepository.List scan: %w", err)
		}
		properties = append(properties, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPropertyRepository.List rows.Err: %w", err)
	}
	return properties, nil
}

func (r *pgPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	query := "SELECT " + propertyColumns + " FROM properties WHERE id = $1"
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPropertyRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgPropertyRepository) Create(ctx context.Context, p *model.Property) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("pgPropertyRepository.Create encode images: %w", err)
	}

	query := `INSERT INTO properties (id, title, description, price_usd, type, status, address,
	              bedrooms, bathrooms, lat, lng, images, featured, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Title, nullIfEmpty(p.Description), p.PriceUSD,
		nullIfEmpty(string(p.Type)), nullIfEmpty(string(p.Status)), nullIfEmpty(p.Address),
		p.Bedrooms, p.Bathrooms, p.Lat, p.Lng, images, p.Featured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgPropertyRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPropertyRepository) Update(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
	var sets []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", nullIfEmpty(*patch.Description))
	}
	if patch.PriceUSD != nil {
		set("price_usd", *patch.PriceUSD)
	}
	if patch.Type != nil {
		set("type", nullIfEmpty(string(*patch.Type)))
	}
	if patch.Status != nil {
		set("status", nullIfEmpty(string(*patch.Status)))
	}
	if patch.Address != nil {
		set("address", nullIfEmpty(*patch.Address))
	}
	if patch.Bedrooms != nil {
		set("bedrooms", *patch.Bedrooms)
	}
	if patch.Bathrooms != nil {
		set("bathrooms", *patch.Bathrooms)
	}
	if patch.Lat != nil {
		set("lat", *patch.Lat)
	}
	if patch.Lng != nil {
		set("lng", *patch.Lng)
	}
	if patch.Images != nil {
		images, err := json.Marshal(*patch.Images)
		if err != nil {
			return nil, fmt.Errorf("pgPropertyRepository.Update encode images: %w", err)
		}
		set("images", images)
	}
	if patch.Featured != nil {
		set("featured", *patch.Featured)
	}

	if len(sets) == 0 {
		// Nothing to merge; the record must still exist.
		return r.FindByID(ctx, id)
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	query := fmt.Sprintf("UPDATE properties SET %s WHERE id = $%d",
		strings.Join(sets, ", "), argID)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgPropertyRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("pgPropertyRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *pgPropertyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("pgPropertyRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPropertyRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// sortProperties orders a slice with the same semantics the SQL variant
// uses. Shared with the flat-file store.
func sortProperties(properties []model.Property, sort model.ListingSort) {
	less := func(a, b model.Property) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}
	switch sort {
	case model.SortPriceAsc:
		less = func(a, b model.Property) bool {
			if a.PriceUSD != b.PriceUSD {
				return a.PriceUSD < b.PriceUSD
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	case model.SortPriceDesc:
		less = func(a, b model.Property) bool {
			if a.PriceUSD != b.PriceUSD {
				return a.PriceUSD > b.PriceUSD
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	sortSlice(properties, less)
}

func sortSlice(properties []model.Property, less func(a, b model.Property) bool) {
	sort.SliceStable(properties, func(i, j int) bool {
		return less(properties[i], properties[j])
	})
}

// matchesFilter reports whether a property satisfies the filter. Price
// bounds are inclusive.
func matchesFilter(p model.Property, f model.ListingFilter) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.MinPrice != nil && p.PriceUSD < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.PriceUSD > *f.MaxPrice {
		return false
	}
	return true
}
