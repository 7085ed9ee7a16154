// Package pipeline provides the orchestrator that runs the knowledge-graph
// stages in dependency order. Every stage is conditional on a completion
// marker, every write is an idempotent upsert, and a provider failure in one
// stage never stops later independent stages, so invoking the pipeline
// repeatedly converges instead of duplicating work.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmtorres/careergraph/internal/cache"
	"github.com/jmtorres/careergraph/internal/db"
	"github.com/jmtorres/careergraph/internal/generator"
	"github.com/jmtorres/careergraph/internal/platform/logger"
	"github.com/jmtorres/careergraph/internal/synth"
	"github.com/jmtorres/careergraph/internal/types"
)

// Stage names used for completion markers and logs.
const (
	StageSkills        = "generate-skills"
	StageRoles         = "generate-roles"
	StageIndustries    = "generate-industries"
	StageRelationships = "synthesize-relationships"
	StageResources     = "generate-resources"
	StagePathways      = "generate-pathways"
)

// Store is the subset of the document store the orchestrator queries.
type Store interface {
	CountSkills(ctx context.Context) (int, error)
	CountRoles(ctx context.Context) (int, error)
	CountIndustries(ctx context.Context) (int, error)
	CountRoleSkills(ctx context.Context) (int, error)
	CountRoleIndustries(ctx context.Context) (int, error)
	CountSkillIndustries(ctx context.Context) (int, error)
	CountSkillPrerequisites(ctx context.Context) (int, error)
	CountLearningResources(ctx context.Context) (int, error)
	CountCareerPathways(ctx context.Context) (int, error)
	GetStageStatus(ctx context.Context, stage string) (*db.StageStatus, error)
	MarkStageComplete(ctx context.Context, stage string, runID uuid.UUID, itemCount int) error
}

// Generator is the content-generation stage.
type Generator interface {
	GenerateSkills(ctx context.Context, categories []string, perCategory int) ([]types.SkillPayload, error)
	GenerateRoles(ctx context.Context, categories []string, perCategory int) ([]types.RolePayload, error)
	GenerateIndustries(ctx context.Context, categories []string, perCategory int) ([]types.IndustryPayload, error)
}

// Persister is the entity-persistence stage.
type Persister interface {
	PersistSkills(ctx context.Context, payloads []types.SkillPayload) ([]types.Skill, error)
	PersistRoles(ctx context.Context, payloads []types.RolePayload) ([]types.Role, error)
	PersistIndustries(ctx context.Context, payloads []types.IndustryPayload) ([]types.Industry, error)
}

// Synthesizer is the relationship-synthesis stage.
type Synthesizer interface {
	SynthesizeAll(ctx context.Context) (synth.Counts, error)
}

// Deriver is the derived-artifact stage.
type Deriver interface {
	GenerateResources(ctx context.Context) (int, error)
	GeneratePathways(ctx context.Context, n int) (int, error)
}

// Options configures one orchestrator invocation.
type Options struct {
	SkillCategories    []string
	RoleCategories     []string
	IndustryCategories []string
	PerCategory        int
	PathwayCount       int
}

// Runner wires the stages together.
type Runner struct {
	store     Store
	cache     *cache.Store
	generator Generator
	persister Persister
	synth     Synthesizer
	deriver   Deriver
	log       *logger.Logger
}

// NewRunner creates a Runner over the given stage implementations.
func NewRunner(store Store, cacheStore *cache.Store, gen Generator, persister Persister, synthesizer Synthesizer, deriver Deriver, log *logger.Logger) *Runner {
	return &Runner{
		store:     store,
		cache:     cacheStore,
		generator: gen,
		persister: persister,
		synth:     synthesizer,
		deriver:   deriver,
		log:       log,
	}
}

// Run executes every stage whose collection is still unpopulated, in
// dependency order: entities, then relationships, then derived artifacts.
// Provider failures are logged and skipped; store failures abort the run.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	runID := uuid.New()
	r.log.Info("pipeline run starting", "runId", runID)

	if err := r.RunSkillStage(ctx, runID, opts); err != nil {
		return err
	}
	if err := r.RunRoleStage(ctx, runID, opts); err != nil {
		return err
	}
	if err := r.RunIndustryStage(ctx, runID, opts); err != nil {
		return err
	}
	if err := r.RunRelationshipStage(ctx, runID); err != nil {
		return err
	}
	if err := r.RunResourceStage(ctx, runID); err != nil {
		return err
	}
	if err := r.RunPathwayStage(ctx, runID, opts.PathwayCount); err != nil {
		return err
	}

	r.log.Info("pipeline run finished", "runId", runID)
	return nil
}

// RunSkillStage generates and persists skills unless the stage already
// completed. Only the generator and persister are touched, so a Runner built
// for this stage alone may leave the other stages nil.
func (r *Runner) RunSkillStage(ctx context.Context, runID uuid.UUID, opts Options) error {
	return runEntityStage(ctx, r, runID, StageSkills, cache.KeySkills,
		r.store.CountSkills,
		func(ctx context.Context) ([]types.SkillPayload, error) {
			return r.generator.GenerateSkills(ctx, opts.SkillCategories, opts.PerCategory)
		},
		r.persister.PersistSkills,
	)
}

// RunRoleStage generates and persists roles.
func (r *Runner) RunRoleStage(ctx context.Context, runID uuid.UUID, opts Options) error {
	return runEntityStage(ctx, r, runID, StageRoles, cache.KeyRoles,
		r.store.CountRoles,
		func(ctx context.Context) ([]types.RolePayload, error) {
			return r.generator.GenerateRoles(ctx, opts.RoleCategories, opts.PerCategory)
		},
		r.persister.PersistRoles,
	)
}

// RunIndustryStage generates and persists industries.
func (r *Runner) RunIndustryStage(ctx context.Context, runID uuid.UUID, opts Options) error {
	return runEntityStage(ctx, r, runID, StageIndustries, cache.KeyIndustries,
		r.store.CountIndustries,
		func(ctx context.Context) ([]types.IndustryPayload, error) {
			return r.generator.GenerateIndustries(ctx, opts.IndustryCategories, opts.PerCategory)
		},
		r.persister.PersistIndustries,
	)
}

// RunRelationshipStage synthesizes all four edge collections.
func (r *Runner) RunRelationshipStage(ctx context.Context, runID uuid.UUID) error {
	return r.runRelationships(ctx, runID)
}

// RunResourceStage derives learning resources.
func (r *Runner) RunResourceStage(ctx context.Context, runID uuid.UUID) error {
	return r.runDerived(ctx, runID, StageResources, r.store.CountLearningResources,
		r.deriver.GenerateResources)
}

// RunPathwayStage derives up to n career pathways.
func (r *Runner) RunPathwayStage(ctx context.Context, runID uuid.UUID, n int) error {
	return r.runDerived(ctx, runID, StagePathways, r.store.CountCareerPathways,
		func(ctx context.Context) (int, error) {
			return r.deriver.GeneratePathways(ctx, n)
		})
}

// runEntityStage generates (or resumes from cache), persists, and marks one
// entity stage. The cache is consulted first: an interrupted earlier run
// leaves its generated payloads there, and resuming from them avoids a
// second provider call.
func runEntityStage[P, E any](
	ctx context.Context,
	r *Runner,
	runID uuid.UUID,
	stage, cacheKey string,
	count func(context.Context) (int, error),
	generate func(context.Context) ([]P, error),
	persist func(context.Context, []P) ([]E, error),
) error {
	done, err := r.stageDone(ctx, stage, count)
	if err != nil {
		return err
	}
	if done {
		r.log.Info("stage already complete, skipping", "stage", stage)
		return nil
	}

	payloads, err := cache.Read[P](r.cache, cacheKey)
	if err != nil {
		return fmt.Errorf("stage %s: %w", stage, err)
	}

	var genErr error
	if len(payloads) == 0 {
		payloads, genErr = generate(ctx)
		if genErr != nil {
			var perr *generator.ProviderError
			if !errors.As(genErr, &perr) {
				return fmt.Errorf("stage %s: %w", stage, genErr)
			}
			r.log.Error("provider failure, keeping partial batch", "stage", stage, "error", genErr)
		}
		if len(payloads) > 0 {
			if err := cache.Write(r.cache, cacheKey, payloads); err != nil {
				return fmt.Errorf("stage %s: %w", stage, err)
			}
		}
	} else {
		r.log.Info("resuming from cache", "stage", stage, "cached", len(payloads))
	}

	if len(payloads) == 0 {
		r.log.Warn("nothing to persist", "stage", stage)
		return nil
	}

	persisted, err := persist(ctx, payloads)
	if err != nil {
		return fmt.Errorf("stage %s: %w", stage, err)
	}

	// A provider failure leaves the stage unmarked: the partial batch is
	// cached and persisted as forward progress, and the next invocation
	// completes the stage from that cache without another provider call.
	// Missing categories are not re-requested; there is no retry policy
	// beyond the one call per batch.
	if genErr == nil {
		if err := r.store.MarkStageComplete(ctx, stage, runID, len(persisted)); err != nil {
			return err
		}
	}

	r.log.Info("stage complete", "stage", stage, "persisted", len(persisted))
	return nil
}

func (r *Runner) runRelationships(ctx context.Context, runID uuid.UUID) error {
	done, err := r.relationshipsDone(ctx)
	if err != nil {
		return err
	}
	if done {
		r.log.Info("stage already complete, skipping", "stage", StageRelationships)
		return nil
	}

	counts, err := r.synth.SynthesizeAll(ctx)
	if err != nil {
		return fmt.Errorf("stage %s: %w", StageRelationships, err)
	}

	if err := r.store.MarkStageComplete(ctx, StageRelationships, runID, counts.Total()); err != nil {
		return err
	}
	r.log.Info("stage complete", "stage", StageRelationships,
		"roleSkills", counts.RoleSkills, "roleIndustries", counts.RoleIndustries,
		"skillIndustries", counts.SkillIndustries, "prerequisites", counts.Prerequisites)
	return nil
}

func (r *Runner) runDerived(ctx context.Context, runID uuid.UUID, stage string, count func(context.Context) (int, error), run func(context.Context) (int, error)) error {
	done, err := r.stageDone(ctx, stage, count)
	if err != nil {
		return err
	}
	if done {
		r.log.Info("stage already complete, skipping", "stage", stage)
		return nil
	}

	n, err := run(ctx)
	if err != nil {
		return fmt.Errorf("stage %s: %w", stage, err)
	}

	if err := r.store.MarkStageComplete(ctx, stage, runID, n); err != nil {
		return err
	}
	r.log.Info("stage complete", "stage", stage, "items", n)
	return nil
}

// stageDone reports whether a stage already completed. The completion marker
// is authoritative; a non-empty collection is accepted as a fallback so
// stores populated before the marker table existed still converge.
func (r *Runner) stageDone(ctx context.Context, stage string, count func(context.Context) (int, error)) (bool, error) {
	status, err := r.store.GetStageStatus(ctx, stage)
	if err != nil {
		return false, err
	}
	if status != nil {
		return true, nil
	}

	n, err := count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// relationshipsDone requires all four edge collections to be populated; a
// partially synthesized graph is re-run, which the composite-key upserts
// make safe.
func (r *Runner) relationshipsDone(ctx context.Context) (bool, error) {
	status, err := r.store.GetStageStatus(ctx, StageRelationships)
	if err != nil {
		return false, err
	}
	if status != nil {
		return true, nil
	}

	for _, count := range []func(context.Context) (int, error){
		r.store.CountRoleSkills,
		r.store.CountRoleIndustries,
		r.store.CountSkillIndustries,
		r.store.CountSkillPrerequisites,
	} {
		n, err := count(ctx)
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, nil
		}
	}
	return true, nil
}
