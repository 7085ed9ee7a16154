package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmtorres/careergraph/internal/types"
)

// UpsertLearningResource writes a resource keyed on its deterministic id
// (res-{skillId}-{index}), so reruns overwrite rather than duplicate.
func (db *DB) UpsertLearningResource(ctx context.Context, res types.LearningResource) error {
	tags, err := json.Marshal(res.Tags)
	if err != nil {
		return &PersistenceError{Collection: "learning_resources", Key: res.ID, Err: err}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO learning_resources (id, title, type, provider, url, description, skill_id,
		                                 difficulty, estimated_hours, cost_type, cost, tags,
		                                 rating, review_count, relevance_score, match_reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2, type = $3, provider = $4, url = $5, description = $6, skill_id = $7,
		     difficulty = $8, estimated_hours = $9, cost_type = $10, cost = $11, tags = $12,
		     rating = $13, review_count = $14, relevance_score = $15, match_reason = $16`,
		res.ID, res.Title, res.Type, res.Provider, res.URL, res.Description, res.SkillID,
		res.Difficulty, res.EstimatedHours, res.CostType, res.Cost, tags,
		res.Rating, res.ReviewCount, res.RelevanceScore, res.MatchReason)
	if err != nil {
		return &PersistenceError{Collection: "learning_resources", Key: res.ID, Err: err}
	}
	return nil
}

// UpsertCareerPathway writes a pathway keyed on its id.
func (db *DB) UpsertCareerPathway(ctx context.Context, p types.CareerPathway) error {
	steps, err := json.Marshal(p.Steps)
	if err != nil {
		return &PersistenceError{Collection: "career_pathways", Key: fmt.Sprint(p.ID), Err: err}
	}
	routes, err := json.Marshal(p.AlternativeRoutes)
	if err != nil {
		return &PersistenceError{Collection: "career_pathways", Key: fmt.Sprint(p.ID), Err: err}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO career_pathways (id, name, description, starting_role_id, target_role_id,
		                              estimated_time_years, steps, alternative_routes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     name = $2, description = $3, starting_role_id = $4, target_role_id = $5,
		     estimated_time_years = $6, steps = $7, alternative_routes = $8`,
		p.ID, p.Name, p.Description, p.StartingRoleID, p.TargetRoleID,
		p.EstimatedTimeYears, steps, routes)
	if err != nil {
		return &PersistenceError{Collection: "career_pathways", Key: fmt.Sprint(p.ID), Err: err}
	}
	return nil
}

// ListCareerPathways returns all pathways ordered by id.
func (db *DB) ListCareerPathways(ctx context.Context) ([]types.CareerPathway, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, description, starting_role_id, target_role_id,
		        estimated_time_years, steps, alternative_routes
		 FROM career_pathways ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pathways: %w", err)
	}
	defer rows.Close()

	var pathways []types.CareerPathway
	for rows.Next() {
		var p types.CareerPathway
		var steps, routes []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.StartingRoleID, &p.TargetRoleID,
			&p.EstimatedTimeYears, &steps, &routes); err != nil {
			return nil, fmt.Errorf("failed to scan pathway: %w", err)
		}
		_ = json.Unmarshal(steps, &p.Steps)
		_ = json.Unmarshal(routes, &p.AlternativeRoutes)
		pathways = append(pathways, p)
	}
	return pathways, rows.Err()
}

// CountLearningResources returns the number of learning resources.
func (db *DB) CountLearningResources(ctx context.Context) (int, error) {
	return db.count(ctx, "learning_resources")
}

// CountCareerPathways returns the number of career pathways.
func (db *DB) CountCareerPathways(ctx context.Context) (int, error) {
	return db.count(ctx, "career_pathways")
}

// MaxCareerPathwayID returns the highest assigned pathway id, 0 when empty.
func (db *DB) MaxCareerPathwayID(ctx context.Context) (int, error) {
	return db.maxID(ctx, "career_pathways")
}
