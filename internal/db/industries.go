package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmtorres/careergraph/internal/types"
)

// UpsertIndustry writes an industry keyed by its name, preserving the
// existing id on conflict.
func (db *DB) UpsertIndustry(ctx context.Context, industry types.Industry) (int, error) {
	tech, err := json.Marshal(industry.DisruptiveTechnologies)
	if err != nil {
		return 0, &PersistenceError{Collection: "industries", Key: industry.Name, Err: err}
	}
	regs, err := json.Marshal(industry.Regulations)
	if err != nil {
		return 0, &PersistenceError{Collection: "industries", Key: industry.Name, Err: err}
	}

	var id int
	err = db.pool.QueryRow(ctx,
		`INSERT INTO industries (id, name, category, description, trend_description,
		                         growth_outlook, disruptive_technologies, regulations, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 ON CONFLICT (name) DO UPDATE SET
		     category = $3, description = $4, trend_description = $5,
		     growth_outlook = $6, disruptive_technologies = $7, regulations = $8,
		     updated_at = NOW()
		 RETURNING id`,
		industry.ID, NormalizeNaturalKey(industry.Name), industry.Category, industry.Description,
		industry.TrendDescription, industry.GrowthOutlook, tech, regs,
	).Scan(&id)
	if err != nil {
		return 0, &PersistenceError{Collection: "industries", Key: industry.Name, Err: err}
	}
	return id, nil
}

// ListIndustries returns all industries ordered by id.
func (db *DB) ListIndustries(ctx context.Context) ([]types.Industry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, category, description, trend_description,
		        growth_outlook, disruptive_technologies, regulations
		 FROM industries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list industries: %w", err)
	}
	defer rows.Close()

	var industries []types.Industry
	for rows.Next() {
		var ind types.Industry
		var tech, regs []byte
		if err := rows.Scan(&ind.ID, &ind.Name, &ind.Category, &ind.Description,
			&ind.TrendDescription, &ind.GrowthOutlook, &tech, &regs); err != nil {
			return nil, fmt.Errorf("failed to scan industry: %w", err)
		}
		_ = json.Unmarshal(tech, &ind.DisruptiveTechnologies)
		_ = json.Unmarshal(regs, &ind.Regulations)
		industries = append(industries, ind)
	}
	return industries, rows.Err()
}

// CountIndustries returns the number of persisted industries.
func (db *DB) CountIndustries(ctx context.Context) (int, error) {
	return db.count(ctx, "industries")
}

// MaxIndustryID returns the highest assigned industry id, 0 when empty.
func (db *DB) MaxIndustryID(ctx context.Context) (int, error) {
	return db.maxID(ctx, "industries")
}
