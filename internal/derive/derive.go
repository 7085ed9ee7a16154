// Package derive builds artifacts from already-persisted state: learning
// resources per skill and multi-step career pathways between roles. Nothing
// here calls the content provider; everything is assembled from the store.
package derive

import (
	"context"
	"math/rand"

	"github.com/jmtorres/careergraph/internal/platform/logger"
	"github.com/jmtorres/careergraph/internal/types"
)

// Store is the subset of the document store the deriver reads and writes.
type Store interface {
	ListSkills(ctx context.Context) ([]types.Skill, error)
	ListRoles(ctx context.Context) ([]types.Role, error)
	ListRoleSkillsByRole(ctx context.Context, roleID int) ([]types.RoleSkill, error)
	UpsertLearningResource(ctx context.Context, res types.LearningResource) error
	MaxCareerPathwayID(ctx context.Context) (int, error)
	UpsertCareerPathway(ctx context.Context, p types.CareerPathway) error
	UpdateRoleCareerPath(ctx context.Context, roleID int, path types.CareerPath) error
}

// Deriver generates learning resources and career pathways.
type Deriver struct {
	store Store
	rng   *rand.Rand
	log   *logger.Logger
}

// New creates a Deriver. The random source is injected so callers can seed
// it for reproducible artifacts.
func New(store Store, rng *rand.Rand, log *logger.Logger) *Deriver {
	return &Deriver{store: store, rng: rng, log: log}
}

func (d *Deriver) between(lo, hi int) int {
	return lo + d.rng.Intn(hi-lo+1)
}

func (d *Deriver) pick(domain []string) string {
	return domain[d.rng.Intn(len(domain))]
}
