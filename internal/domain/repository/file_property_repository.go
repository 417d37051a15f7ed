package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/domain/model"

	"github.com/rs/zerolog/log"
)

// filePropertyRepository persists the whole property set as one JSON file.
// Every mutation holds the lock across the read-merge-rewrite cycle, so
// concurrent admin edits cannot lose updates. Writes go through a temp file
// and rename, the file on disk is always a complete document.
type filePropertyRepository struct {
	mu   sync.Mutex
	path string
}

func NewFilePropertyRepository(path string) (PropertyRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("filePropertyRepository: %w", err)
	}
	return &filePropertyRepository{path: path}, nil
}

func (r *filePropertyRepository) load() ([]model.Property, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Property{}, nil
		}
		return nil, fmt.Errorf("filePropertyRepository.load: %w", err)
	}
	var properties []model.Property
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, fmt.Errorf("filePropertyRepository.load decode: %w", err)
	}
	return properties, nil
}

func (r *filePropertyRepository) save(properties []model.Property) error {
	data, err := json.MarshalIndent(properties, "", "  ")
	if err != nil {
		return fmt.Errorf("filePropertyRepository.save encode: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("filePropertyRepository.save write: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("filePropertyRepository.save rename: %w", err)
	}
	return nil
}

// List degrades to an empty listing when the file cannot be read: the public
// site keeps rendering instead of failing.
func (r *filePropertyRepository) List(_ context.Context, filter model.ListingFilter) ([]model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		log.Error().Err(err).Str("path", r.path).Msg("property file unreadable, serving empty listing")
		return []model.Property{}, nil
	}

	filtered := []model.Property{}
	for _, p := range all {
		if matchesFilter(p, filter) {
			filtered = append(filtered, p)
		}
	}
	sortProperties(filtered, filter.Sort)
	return filtered, nil
}

func (r *filePropertyRepository) FindByID(_ context.Context, id string) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *filePropertyRepository) Create(_ context.Context, property *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}
	all = append(all, *property)
	return r.save(all)
}

func (r *filePropertyRepository) Update(_ context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			if patch.IsEmpty() {
				found := all[i]
				return &found, nil
			}
			patch.Apply(&all[i])
			all[i].UpdatedAt = time.Now()
			if err := r.save(all); err != nil {
				return nil, err
			}
			updated := all[i]
			return &updated, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *filePropertyRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			all = append(all[:i], all[i+1:]...)
			return r.save(all)
		}
	}
	return common.ErrNotFound
}
