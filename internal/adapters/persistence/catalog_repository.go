package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/compatibility"
)

// CatalogRepository persists the normalized catalog and per-weapon
// compatibility maps so a process restart doesn't require re-fetching and
// re-normalizing from tarkov.dev (§9 "Global mutable state").
type CatalogRepository interface {
	GetCatalog(ctx context.Context, lang, gameMode string, version int) (catalog.ItemLookup, error)
	PutCatalog(ctx context.Context, lang, gameMode string, version int, lookup catalog.ItemLookup) error

	GetCompatibilityMap(ctx context.Context, weaponID, lang, gameMode string, version int) (*compatibility.Map, error)
	PutCompatibilityMap(ctx context.Context, weaponID, lang, gameMode string, version int, m *compatibility.Map) error
}

// GormCatalogRepository implements CatalogRepository using GORM, following
// the same Get/Add upsert shape as the teacher's system graph repository:
// JSON-blob columns, gorm.ErrRecordNotFound mapped to a (nil, nil) cache
// miss, and clause.OnConflict upserts keyed on the composite primary key.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetCatalog(ctx context.Context, lang, gameMode string, version int) (catalog.ItemLookup, error) {
	var model CatalogCacheModel
	err := r.db.WithContext(ctx).
		Where("language = ? AND game_mode = ? AND version = ?", lang, gameMode, version).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get catalog cache: %w", err)
	}

	var lookup catalog.ItemLookup
	if err := json.Unmarshal([]byte(model.ItemLookup), &lookup); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog cache: %w", err)
	}
	return lookup, nil
}

func (r *GormCatalogRepository) PutCatalog(ctx context.Context, lang, gameMode string, version int, lookup catalog.ItemLookup) error {
	blob, err := json.Marshal(lookup)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	model := CatalogCacheModel{Language: lang, GameMode: gameMode, Version: version, ItemLookup: string(blob)}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "language"}, {Name: "game_mode"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "item_lookup", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to put catalog cache: %w", err)
	}
	return nil
}

func (r *GormCatalogRepository) GetCompatibilityMap(ctx context.Context, weaponID, lang, gameMode string, version int) (*compatibility.Map, error) {
	var model CompatibilityCacheModel
	err := r.db.WithContext(ctx).
		Where("weapon_id = ? AND language = ? AND game_mode = ? AND version = ?", weaponID, lang, gameMode, version).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get compatibility cache: %w", err)
	}

	var m compatibility.Map
	if err := json.Unmarshal([]byte(model.MapData), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compatibility cache: %w", err)
	}
	return &m, nil
}

func (r *GormCatalogRepository) PutCompatibilityMap(ctx context.Context, weaponID, lang, gameMode string, version int, m *compatibility.Map) error {
	blob, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal compatibility map: %w", err)
	}

	model := CompatibilityCacheModel{WeaponID: weaponID, Language: lang, GameMode: gameMode, Version: version, MapData: string(blob)}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "weapon_id"}, {Name: "language"}, {Name: "game_mode"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "map_data", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to put compatibility cache: %w", err)
	}
	return nil
}
