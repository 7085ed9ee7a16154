// Package persist implements the entity-persistence stage: sequential id
// assignment and natural-key upserts into the document store. Because the
// upsert filter is the name/title, repeated runs converge instead of
// duplicating rows.
package persist

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jmtorres/careergraph/internal/platform/logger"
	"github.com/jmtorres/careergraph/internal/types"
)

// upsertConcurrency bounds parallel writes. Order is irrelevant once ids are
// pre-assigned and the upsert filter is the natural key.
const upsertConcurrency = 4

// Store is the subset of the document store the persister writes through.
type Store interface {
	MaxSkillID(ctx context.Context) (int, error)
	UpsertSkill(ctx context.Context, skill types.Skill) (int, error)
	MaxRoleID(ctx context.Context) (int, error)
	UpsertRole(ctx context.Context, role types.Role) (int, error)
	MaxIndustryID(ctx context.Context) (int, error)
	UpsertIndustry(ctx context.Context, industry types.Industry) (int, error)
}

// Persister assigns ids and upserts generated payloads.
type Persister struct {
	store Store
	log   *logger.Logger
}

// New creates a Persister over the given store.
func New(store Store, log *logger.Logger) *Persister {
	return &Persister{store: store, log: log}
}

// PersistSkills upserts the payloads, assigning ids from MaxSkillID()+1.
// A single-record failure is logged and skipped; only the surviving skills
// are returned, carrying the ids the store actually assigned them.
func (p *Persister) PersistSkills(ctx context.Context, payloads []types.SkillPayload) ([]types.Skill, error) {
	nextID, err := p.allocator(ctx, p.store.MaxSkillID, "skills")
	if err != nil {
		return nil, err
	}

	results := make([]*types.Skill, len(payloads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)

	for i, payload := range payloads {
		skill := types.Skill{
			ID:                 nextID(),
			Name:               payload.Name,
			Category:           payload.Category,
			Description:        payload.Description,
			DemandTrend:        payload.DemandTrend,
			LearningDifficulty: payload.LearningDifficulty,
			FutureRelevance:    payload.FutureRelevance,
			SFIA:               payload.SFIA,
			ECF:                payload.ECF,
			LevelingCriteria:   payload.LevelingCriteria,
		}
		i := i
		g.Go(func() error {
			id, err := p.store.UpsertSkill(gctx, skill)
			if err != nil {
				p.log.Error("skipping skill after persistence failure", "name", skill.Name, "error", err)
				return nil
			}
			skill.ID = id
			results[i] = &skill
			p.log.Info("saved skill", "id", id, "name", skill.Name)
			return nil
		})
	}
	_ = g.Wait()

	return collect(results), nil
}

// PersistRoles upserts the payloads, assigning ids from MaxRoleID()+1.
func (p *Persister) PersistRoles(ctx context.Context, payloads []types.RolePayload) ([]types.Role, error) {
	nextID, err := p.allocator(ctx, p.store.MaxRoleID, "roles")
	if err != nil {
		return nil, err
	}

	results := make([]*types.Role, len(payloads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)

	for i, payload := range payloads {
		role := types.Role{
			ID:                     nextID(),
			Title:                  payload.Title,
			Category:               payload.Category,
			Description:            payload.Description,
			AverageSalary:          payload.AverageSalary,
			EducationRequirements:  payload.EducationRequirements,
			ExperienceRequirements: payload.ExperienceRequirements,
			DemandOutlook:          payload.DemandOutlook,
		}
		i := i
		g.Go(func() error {
			id, err := p.store.UpsertRole(gctx, role)
			if err != nil {
				p.log.Error("skipping role after persistence failure", "title", role.Title, "error", err)
				return nil
			}
			role.ID = id
			results[i] = &role
			p.log.Info("saved role", "id", id, "title", role.Title)
			return nil
		})
	}
	_ = g.Wait()

	return collect(results), nil
}

// PersistIndustries upserts the payloads, assigning ids from MaxIndustryID()+1.
func (p *Persister) PersistIndustries(ctx context.Context, payloads []types.IndustryPayload) ([]types.Industry, error) {
	nextID, err := p.allocator(ctx, p.store.MaxIndustryID, "industries")
	if err != nil {
		return nil, err
	}

	results := make([]*types.Industry, len(payloads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)

	for i, payload := range payloads {
		industry := types.Industry{
			ID:                     nextID(),
			Name:                   payload.Name,
			Category:               payload.Category,
			Description:            payload.Description,
			TrendDescription:       payload.TrendDescription,
			GrowthOutlook:          payload.GrowthOutlook,
			DisruptiveTechnologies: payload.DisruptiveTechnologies,
			Regulations:            payload.Regulations,
		}
		i := i
		g.Go(func() error {
			id, err := p.store.UpsertIndustry(gctx, industry)
			if err != nil {
				p.log.Error("skipping industry after persistence failure", "name", industry.Name, "error", err)
				return nil
			}
			industry.ID = id
			results[i] = &industry
			p.log.Info("saved industry", "id", id, "name", industry.Name)
			return nil
		})
	}
	_ = g.Wait()

	return collect(results), nil
}

// allocator queries max(id) once and hands out sequential ids from there,
// so repeated runs can never assign colliding ids.
func (p *Persister) allocator(ctx context.Context, maxID func(context.Context) (int, error), collection string) (func() int, error) {
	max, err := maxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %s ids: %w", collection, err)
	}
	next := max
	return func() int {
		next++
		return next
	}, nil
}

func collect[T any](results []*T) []T {
	var out []T
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
