package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"

	"finmodel/pkg/models"
)

// ResultCache caches extraction results so repeated runs against the same
// source skip re-parsing. The database is the primary backend when a pool
// is available; otherwise entries live as JSON files under Dir.
type ResultCache struct {
	Dir string
}

// NewResultCache returns a cache rooted at dir, defaulting to
// .cache/finmodel/extractions under the working directory.
func NewResultCache(dir string) *ResultCache {
	if dir == "" {
		dir = filepath.Join(".cache", "finmodel", "extractions")
	}
	return &ResultCache{Dir: dir}
}

// Get returns the cached result for a source, or nil on a miss. Cache
// errors are logged and treated as misses so a broken cache never blocks
// an extraction.
func (c *ResultCache) Get(ctx context.Context, source string) *models.ExtractionResult {
	if pool != nil {
		result, err := loadBySource(ctx, source)
		if err != nil {
			log.Printf("cache: db lookup failed for %s: %v", source, err)
		} else if result != nil {
			return result
		}
	}

	data, err := os.ReadFile(c.path(source))
	if err != nil {
		return nil
	}
	var result models.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Printf("cache: corrupt entry for %s: %v", source, err)
		return nil
	}
	return &result
}

// Put stores a result in every available backend.
func (c *ResultCache) Put(ctx context.Context, result *models.ExtractionResult) error {
	if pool != nil {
		if err := SaveResult(ctx, result); err != nil {
			log.Printf("cache: db save failed for %s: %v", result.Source, err)
		}
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("cache: create dir: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: marshal result: %w", err)
	}
	if err := os.WriteFile(c.path(result.Source), data, 0o644); err != nil {
		return fmt.Errorf("cache: write entry: %w", err)
	}
	return nil
}

// Invalidate removes the file entry for a source. Database rows are
// overwritten on the next Put rather than deleted.
func (c *ResultCache) Invalidate(source string) {
	os.Remove(c.path(source))
}

func (c *ResultCache) path(source string) string {
	sum := sha256.Sum256([]byte(source))
	return filepath.Join(c.Dir, hex.EncodeToString(sum[:8])+".json")
}

func loadBySource(ctx context.Context, source string) (*models.ExtractionResult, error) {
	query := `
		SELECT result FROM extraction_results
		WHERE source = $1
		ORDER BY extracted_at DESC
		LIMIT 1`

	var payload []byte
	err := pool.QueryRow(ctx, query, source).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
