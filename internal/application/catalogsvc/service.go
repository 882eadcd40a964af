// Package catalogsvc provides unified, cached access to the normalized
// weapon/mod catalog and per-weapon compatibility graphs, so the rest of
// the application never talks to the GraphQL client or the database
// directly (§9 "Global mutable state").
package catalogsvc

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/andrescamacho/gunsmith-go/internal/adapters/catalogapi"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/metrics"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/persistence"
	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/compatibility"
)

// Service provides unified access to the normalized catalog and
// compatibility graphs.
//
// Caching Strategy (Two-Tier):
// - Tier 1: In-memory cache (catalogCache/graphCache) - infinite TTL during process lifetime
// - Tier 2: Database cache (catalog_caches/compatibility_caches tables) - CacheVersion-gated persistence across restarts
// - Concurrent build protection via per-key locks (buildLocks)
type Service struct {
	client     *catalogapi.Client
	repo       persistence.CatalogRepository
	version    int
	catalogCache sync.Map // key: "lang:gameMode" -> catalog.ItemLookup
	graphCache   sync.Map // key: "weaponID:lang:gameMode" -> *compatibility.Map
	buildLocks   sync.Map // key: any cache key above -> *sync.Mutex
}

// NewService creates a catalog service.
func NewService(client *catalogapi.Client, repo persistence.CatalogRepository, version int) *Service {
	return &Service{client: client, repo: repo, version: version}
}

func catalogKey(lang, gameMode string) string {
	return lang + ":" + gameMode
}

func graphKey(weaponID, lang, gameMode string) string {
	return weaponID + ":" + lang + ":" + gameMode
}

// GetCatalog returns the normalized item lookup for a language/game mode,
// fetching and normalizing from the catalog API only on a full cache miss.
func (s *Service) GetCatalog(ctx context.Context, lang, gameMode string) (catalog.ItemLookup, error) {
	lang = catalog.NormalizeLanguage(lang)
	gameMode = catalog.NormalizeGameMode(gameMode)
	key := catalogKey(lang, gameMode)

	if cached, ok := s.catalogCache.Load(key); ok {
		metrics.RecordCacheLookup("memory", true)
		return cached.(catalog.ItemLookup), nil
	}
	metrics.RecordCacheLookup("memory", false)

	lock, _ := s.buildLocks.LoadOrStore(key, &sync.Mutex{})
	mutex := lock.(*sync.Mutex)
	mutex.Lock()
	defer mutex.Unlock()

	if cached, ok := s.catalogCache.Load(key); ok {
		return cached.(catalog.ItemLookup), nil
	}

	if s.repo != nil {
		if lookup, err := s.repo.GetCatalog(ctx, lang, gameMode, s.version); err != nil {
			log.Printf("catalog: error loading catalog from database: %v", err)
		} else if lookup != nil {
			metrics.RecordCacheLookup("database", true)
			s.catalogCache.Store(key, lookup)
			return lookup, nil
		} else {
			metrics.RecordCacheLookup("database", false)
		}
	}

	log.Printf("catalog: fetching %s/%s from API", lang, gameMode)
	weapons, mods, err := s.client.FetchAll(ctx, lang, gameMode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	lookup := catalog.Normalize(weapons, mods)

	if s.repo != nil {
		if err := s.repo.PutCatalog(ctx, lang, gameMode, s.version, lookup); err != nil {
			log.Printf("catalog: warning: failed to cache catalog for %s/%s: %v", lang, gameMode, err)
		}
	}
	s.catalogCache.Store(key, lookup)
	return lookup, nil
}

// GetCompatibilityMap returns the compatibility graph for weaponID, building
// it via BFS only on a full cache miss.
func (s *Service) GetCompatibilityMap(ctx context.Context, weaponID, lang, gameMode string) (*compatibility.Map, error) {
	lang = catalog.NormalizeLanguage(lang)
	gameMode = catalog.NormalizeGameMode(gameMode)
	key := graphKey(weaponID, lang, gameMode)

	if cached, ok := s.graphCache.Load(key); ok {
		return cached.(*compatibility.Map), nil
	}

	lock, _ := s.buildLocks.LoadOrStore(key, &sync.Mutex{})
	mutex := lock.(*sync.Mutex)
	mutex.Lock()
	defer mutex.Unlock()

	if cached, ok := s.graphCache.Load(key); ok {
		return cached.(*compatibility.Map), nil
	}

	if s.repo != nil {
		if m, err := s.repo.GetCompatibilityMap(ctx, weaponID, lang, gameMode, s.version); err != nil {
			log.Printf("catalog: error loading compatibility map from database: %v", err)
		} else if m != nil {
			s.graphCache.Store(key, m)
			return m, nil
		}
	}

	lookup, err := s.GetCatalog(ctx, lang, gameMode)
	if err != nil {
		return nil, err
	}

	m, err := compatibility.Build(weaponID, lookup)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.PutCompatibilityMap(ctx, weaponID, lang, gameMode, s.version, m); err != nil {
			log.Printf("catalog: warning: failed to cache compatibility map for %s: %v", weaponID, err)
		}
	}
	s.graphCache.Store(key, m)
	return m, nil
}

// Refresh drops both in-memory tiers, forcing the next access to rebuild
// from the database cache or the API.
func (s *Service) Refresh() {
	s.catalogCache = sync.Map{}
	s.graphCache = sync.Map{}
}
