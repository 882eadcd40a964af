package persistence

import "time"

// CatalogCacheModel represents the catalog_caches table: the last
// successfully normalized ItemLookup for a (language, game_mode) pair,
// stored as a JSON blob keyed by the pair plus the upstream cache version
// tag (§6 "processed_<md5(lang+game_mode+version)>.json").
type CatalogCacheModel struct {
	Language   string    `gorm:"column:language;primaryKey;size:8"`
	GameMode   string    `gorm:"column:game_mode;primaryKey;size:16"`
	Version    int       `gorm:"column:version;not null"`
	ItemLookup string    `gorm:"column:item_lookup;type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (CatalogCacheModel) TableName() string {
	return "catalog_caches"
}

// CompatibilityCacheModel represents the compatibility_caches table: the
// per-weapon CompatibilityMap, rebuilt only when the owning catalog's
// version changes.
type CompatibilityCacheModel struct {
	WeaponID  string    `gorm:"column:weapon_id;primaryKey;size:64"`
	Language  string    `gorm:"column:language;primaryKey;size:8"`
	GameMode  string    `gorm:"column:game_mode;primaryKey;size:16"`
	Version   int       `gorm:"column:version;not null"`
	MapData   string    `gorm:"column:map_data;type:jsonb;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (CompatibilityCacheModel) TableName() string {
	return "compatibility_caches"
}
