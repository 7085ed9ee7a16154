package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmtorres/careergraph/internal/types"
)

// UpsertRole writes a role keyed by its title, preserving the existing id on
// conflict. The careerPath column is deliberately not touched on update: it
// is back-filled by pathway synthesis, not by generation.
func (db *DB) UpsertRole(ctx context.Context, role types.Role) (int, error) {
	edu, err := json.Marshal(role.EducationRequirements)
	if err != nil {
		return 0, &PersistenceError{Collection: "roles", Key: role.Title, Err: err}
	}
	exp, err := json.Marshal(role.ExperienceRequirements)
	if err != nil {
		return 0, &PersistenceError{Collection: "roles", Key: role.Title, Err: err}
	}

	var id int
	err = db.pool.QueryRow(ctx,
		`INSERT INTO roles (id, title, category, description, average_salary,
		                    education_requirements, experience_requirements, demand_outlook, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 ON CONFLICT (title) DO UPDATE SET
		     category = $3, description = $4, average_salary = $5,
		     education_requirements = $6, experience_requirements = $7,
		     demand_outlook = $8, updated_at = NOW()
		 RETURNING id`,
		role.ID, NormalizeNaturalKey(role.Title), role.Category, role.Description,
		role.AverageSalary, edu, exp, role.DemandOutlook,
	).Scan(&id)
	if err != nil {
		return 0, &PersistenceError{Collection: "roles", Key: role.Title, Err: err}
	}
	return id, nil
}

// UpdateRoleCareerPath back-fills the denormalized next/previous role titles
// once pathways exist. This is the only post-creation mutation in the core.
func (db *DB) UpdateRoleCareerPath(ctx context.Context, roleID int, path types.CareerPath) error {
	data, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to marshal career path: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE roles SET career_path = $1, updated_at = NOW() WHERE id = $2`,
		data, roleID)
	if err != nil {
		return fmt.Errorf("failed to update career path for role %d: %w", roleID, err)
	}
	return nil
}

// ListRoles returns all roles ordered by id.
func (db *DB) ListRoles(ctx context.Context) ([]types.Role, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, category, description, average_salary,
		        education_requirements, experience_requirements, demand_outlook, career_path
		 FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []types.Role
	for rows.Next() {
		var r types.Role
		var edu, exp, path []byte
		if err := rows.Scan(&r.ID, &r.Title, &r.Category, &r.Description, &r.AverageSalary,
			&edu, &exp, &r.DemandOutlook, &path); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		_ = json.Unmarshal(edu, &r.EducationRequirements)
		_ = json.Unmarshal(exp, &r.ExperienceRequirements)
		_ = json.Unmarshal(path, &r.CareerPath)
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// CountRoles returns the number of persisted roles.
func (db *DB) CountRoles(ctx context.Context) (int, error) {
	return db.count(ctx, "roles")
}

// MaxRoleID returns the highest assigned role id, 0 when empty.
func (db *DB) MaxRoleID(ctx context.Context) (int, error) {
	return db.maxID(ctx, "roles")
}
