package db

import (
	"context"
	"fmt"

	"github.com/jmtorres/careergraph/internal/types"
)

// UpsertRoleSkill writes a role-skill edge keyed on (role_id, skill_id).
// Repeated synthesis runs refresh the attributes but never create a second
// edge for the same pair.
func (db *DB) UpsertRoleSkill(ctx context.Context, edge types.RoleSkill) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO role_skills (role_id, skill_id, importance, level_required, context)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (role_id, skill_id) DO UPDATE SET
		     importance = $3, level_required = $4, context = $5`,
		edge.RoleID, edge.SkillID, edge.Importance, edge.LevelRequired, edge.Context)
	if err != nil {
		return &PersistenceError{
			Collection: "role_skills",
			Key:        fmt.Sprintf("%d/%d", edge.RoleID, edge.SkillID),
			Err:        err,
		}
	}
	return nil
}

// UpsertRoleIndustry writes a role-industry edge keyed on (role_id, industry_id).
func (db *DB) UpsertRoleIndustry(ctx context.Context, edge types.RoleIndustry) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO role_industries (role_id, industry_id, prevalence, notes, specializations)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (role_id, industry_id) DO UPDATE SET
		     prevalence = $3, notes = $4, specializations = $5`,
		edge.RoleID, edge.IndustryID, edge.Prevalence, edge.Notes, edge.Specializations)
	if err != nil {
		return &PersistenceError{
			Collection: "role_industries",
			Key:        fmt.Sprintf("%d/%d", edge.RoleID, edge.IndustryID),
			Err:        err,
		}
	}
	return nil
}

// UpsertSkillIndustry writes a skill-industry edge keyed on (skill_id, industry_id).
func (db *DB) UpsertSkillIndustry(ctx context.Context, edge types.SkillIndustry) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO skill_industries (skill_id, industry_id, importance, trend_direction, contextual_application)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (skill_id, industry_id) DO UPDATE SET
		     importance = $3, trend_direction = $4, contextual_application = $5`,
		edge.SkillID, edge.IndustryID, edge.Importance, edge.TrendDirection, edge.ContextualApplication)
	if err != nil {
		return &PersistenceError{
			Collection: "skill_industries",
			Key:        fmt.Sprintf("%d/%d", edge.SkillID, edge.IndustryID),
			Err:        err,
		}
	}
	return nil
}

// UpsertSkillPrerequisite writes a prerequisite edge keyed on
// (skill_id, prerequisite_id). The self-loop check also lives in the schema.
func (db *DB) UpsertSkillPrerequisite(ctx context.Context, edge types.SkillPrerequisite) error {
	if edge.SkillID == edge.PrerequisiteID {
		return &PersistenceError{
			Collection: "skill_prerequisites",
			Key:        fmt.Sprintf("%d/%d", edge.SkillID, edge.PrerequisiteID),
			Err:        fmt.Errorf("skill cannot be its own prerequisite"),
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO skill_prerequisites (skill_id, prerequisite_id, importance, acquisition_order, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (skill_id, prerequisite_id) DO UPDATE SET
		     importance = $3, acquisition_order = $4, notes = $5`,
		edge.SkillID, edge.PrerequisiteID, edge.Importance, edge.AcquisitionOrder, edge.Notes)
	if err != nil {
		return &PersistenceError{
			Collection: "skill_prerequisites",
			Key:        fmt.Sprintf("%d/%d", edge.SkillID, edge.PrerequisiteID),
			Err:        err,
		}
	}
	return nil
}

// ListRoleSkillsByRole returns the skill edges of one role ordered by skill id.
func (db *DB) ListRoleSkillsByRole(ctx context.Context, roleID int) ([]types.RoleSkill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT role_id, skill_id, importance, level_required, context
		 FROM role_skills WHERE role_id = $1 ORDER BY skill_id`, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role skills: %w", err)
	}
	defer rows.Close()

	var edges []types.RoleSkill
	for rows.Next() {
		var e types.RoleSkill
		if err := rows.Scan(&e.RoleID, &e.SkillID, &e.Importance, &e.LevelRequired, &e.Context); err != nil {
			return nil, fmt.Errorf("failed to scan role skill: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// CountRoleSkills returns the number of role-skill edges.
func (db *DB) CountRoleSkills(ctx context.Context) (int, error) {
	return db.count(ctx, "role_skills")
}

// CountRoleIndustries returns the number of role-industry edges.
func (db *DB) CountRoleIndustries(ctx context.Context) (int, error) {
	return db.count(ctx, "role_industries")
}

// CountSkillIndustries returns the number of skill-industry edges.
func (db *DB) CountSkillIndustries(ctx context.Context) (int, error) {
	return db.count(ctx, "skill_industries")
}

// CountSkillPrerequisites returns the number of prerequisite edges.
func (db *DB) CountSkillPrerequisites(ctx context.Context) (int, error) {
	return db.count(ctx, "skill_prerequisites")
}
