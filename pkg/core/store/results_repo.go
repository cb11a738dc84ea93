package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finmodel/pkg/models"
)

// Expected schema:
//
//	CREATE TABLE extraction_results (
//	    id           TEXT PRIMARY KEY,
//	    company_name TEXT NOT NULL,
//	    source       TEXT NOT NULL,
//	    result       JSONB NOT NULL,
//	    extracted_at TIMESTAMPTZ NOT NULL,
//	    UNIQUE (company_name, source)
//	);

// SaveResult upserts an extraction result keyed by (company, source). A
// re-extraction of the same source replaces the stored row.
func SaveResult(ctx context.Context, result *models.ExtractionResult) error {
	if pool == nil {
		return fmt.Errorf("store: database not initialized")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("store: marshal result: %w", err)
	}

	query := `
		INSERT INTO extraction_results (id, company_name, source, result, extracted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_name, source) DO UPDATE SET
			id = EXCLUDED.id,
			result = EXCLUDED.result,
			extracted_at = EXCLUDED.extracted_at`

	_, err = pool.Exec(ctx, query,
		result.ID, result.CompanyName, result.Source, payload, result.ExtractedAt)
	if err != nil {
		return fmt.Errorf("store: save result for %s: %w", result.CompanyName, err)
	}
	return nil
}

// LoadResult fetches the most recent stored extraction for a company and
// source. Returns (nil, nil) when no row exists.
func LoadResult(ctx context.Context, companyName, source string) (*models.ExtractionResult, error) {
	if pool == nil {
		return nil, fmt.Errorf("store: database not initialized")
	}

	query := `
		SELECT result FROM extraction_results
		WHERE company_name = $1 AND source = $2`

	var payload []byte
	err := pool.QueryRow(ctx, query, companyName, source).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: load result for %s: %w", companyName, err)
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("store: decode stored result: %w", err)
	}
	return &result, nil
}

// ListCompanies returns the distinct company names with stored extractions.
func ListCompanies(ctx context.Context) ([]string, error) {
	if pool == nil {
		return nil, fmt.Errorf("store: database not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT DISTINCT company_name FROM extraction_results ORDER BY company_name`)
	if err != nil {
		return nil, fmt.Errorf("store: list companies: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
