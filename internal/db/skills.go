package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmtorres/careergraph/internal/types"
)

// UpsertSkill writes a skill keyed by its name. When a skill with the same
// name exists its fields are overwritten and its existing id is preserved.
// Returns the id the record ended up with.
func (db *DB) UpsertSkill(ctx context.Context, skill types.Skill) (int, error) {
	sfia, err := json.Marshal(skill.SFIA)
	if err != nil {
		return 0, &PersistenceError{Collection: "skills", Key: skill.Name, Err: err}
	}
	ecf, err := json.Marshal(skill.ECF)
	if err != nil {
		return 0, &PersistenceError{Collection: "skills", Key: skill.Name, Err: err}
	}
	criteria, err := json.Marshal(skill.LevelingCriteria)
	if err != nil {
		return 0, &PersistenceError{Collection: "skills", Key: skill.Name, Err: err}
	}

	var id int
	err = db.pool.QueryRow(ctx,
		`INSERT INTO skills (id, name, category, description, demand_trend, learning_difficulty,
		                     future_relevance, sfia_mapping, ecf_mapping, leveling_criteria, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		 ON CONFLICT (name) DO UPDATE SET
		     category = $3, description = $4, demand_trend = $5, learning_difficulty = $6,
		     future_relevance = $7, sfia_mapping = $8, ecf_mapping = $9,
		     leveling_criteria = $10, updated_at = NOW()
		 RETURNING id`,
		skill.ID, NormalizeNaturalKey(skill.Name), skill.Category, skill.Description,
		skill.DemandTrend, skill.LearningDifficulty, skill.FutureRelevance,
		sfia, ecf, criteria,
	).Scan(&id)
	if err != nil {
		return 0, &PersistenceError{Collection: "skills", Key: skill.Name, Err: err}
	}
	return id, nil
}

// ListSkills returns all skills ordered by id.
func (db *DB) ListSkills(ctx context.Context) ([]types.Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, category, description, demand_trend, learning_difficulty,
		        future_relevance, sfia_mapping, ecf_mapping, leveling_criteria
		 FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []types.Skill
	for rows.Next() {
		var s types.Skill
		var sfia, ecf, criteria []byte
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.DemandTrend,
			&s.LearningDifficulty, &s.FutureRelevance, &sfia, &ecf, &criteria); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		_ = json.Unmarshal(sfia, &s.SFIA)
		_ = json.Unmarshal(ecf, &s.ECF)
		_ = json.Unmarshal(criteria, &s.LevelingCriteria)
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// CountSkills returns the number of persisted skills.
func (db *DB) CountSkills(ctx context.Context) (int, error) {
	return db.count(ctx, "skills")
}

// MaxSkillID returns the highest assigned skill id, 0 when empty. The
// persister allocates ids starting at MaxSkillID()+1 so repeated runs never
// collide.
func (db *DB) MaxSkillID(ctx context.Context) (int, error) {
	return db.maxID(ctx, "skills")
}
