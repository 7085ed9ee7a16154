package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtorres/careergraph/internal/cache"
	"github.com/jmtorres/careergraph/internal/db"
	"github.com/jmtorres/careergraph/internal/generator"
	"github.com/jmtorres/careergraph/internal/platform/logger"
	"github.com/jmtorres/careergraph/internal/synth"
	"github.com/jmtorres/careergraph/internal/types"
)

type fakeStore struct {
	counts  map[string]int
	markers map[string]db.StageStatus
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		counts:  make(map[string]int),
		markers: make(map[string]db.StageStatus),
	}
}

func (s *fakeStore) CountSkills(context.Context) (int, error)        { return s.counts["skills"], nil }
func (s *fakeStore) CountRoles(context.Context) (int, error)         { return s.counts["roles"], nil }
func (s *fakeStore) CountIndustries(context.Context) (int, error)    { return s.counts["industries"], nil }
func (s *fakeStore) CountRoleSkills(context.Context) (int, error)    { return s.counts["role_skills"], nil }
func (s *fakeStore) CountRoleIndustries(context.Context) (int, error) {
	return s.counts["role_industries"], nil
}
func (s *fakeStore) CountSkillIndustries(context.Context) (int, error) {
	return s.counts["skill_industries"], nil
}
func (s *fakeStore) CountSkillPrerequisites(context.Context) (int, error) {
	return s.counts["skill_prerequisites"], nil
}
func (s *fakeStore) CountLearningResources(context.Context) (int, error) {
	return s.counts["learning_resources"], nil
}
func (s *fakeStore) CountCareerPathways(context.Context) (int, error) {
	return s.counts["career_pathways"], nil
}

func (s *fakeStore) GetStageStatus(_ context.Context, stage string) (*db.StageStatus, error) {
	if m, ok := s.markers[stage]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *fakeStore) MarkStageComplete(_ context.Context, stage string, runID uuid.UUID, itemCount int) error {
	s.markers[stage] = db.StageStatus{Stage: stage, RunID: runID, ItemCount: itemCount, CompletedAt: time.Now()}
	return nil
}

type fakeGenerator struct {
	skillCalls, roleCalls, industryCalls int
	skillErr                             error
	partialSkills                        []types.SkillPayload
}

func (g *fakeGenerator) GenerateSkills(context.Context, []string, int) ([]types.SkillPayload, error) {
	g.skillCalls++
	if g.skillErr != nil {
		return g.partialSkills, g.skillErr
	}
	return []types.SkillPayload{{Name: "Go"}, {Name: "SQL"}}, nil
}

func (g *fakeGenerator) GenerateRoles(context.Context, []string, int) ([]types.RolePayload, error) {
	g.roleCalls++
	return []types.RolePayload{{Title: "Frontend Developer"}}, nil
}

func (g *fakeGenerator) GenerateIndustries(context.Context, []string, int) ([]types.IndustryPayload, error) {
	g.industryCalls++
	return []types.IndustryPayload{{Name: "Healthcare"}}, nil
}

type fakePersister struct {
	skillInputs [][]types.SkillPayload
}

func (p *fakePersister) PersistSkills(_ context.Context, payloads []types.SkillPayload) ([]types.Skill, error) {
	p.skillInputs = append(p.skillInputs, payloads)
	skills := make([]types.Skill, len(payloads))
	for i, pl := range payloads {
		skills[i] = types.Skill{ID: i + 1, Name: pl.Name}
	}
	return skills, nil
}

func (p *fakePersister) PersistRoles(_ context.Context, payloads []types.RolePayload) ([]types.Role, error) {
	roles := make([]types.Role, len(payloads))
	for i, pl := range payloads {
		roles[i] = types.Role{ID: i + 1, Title: pl.Title}
	}
	return roles, nil
}

func (p *fakePersister) PersistIndustries(_ context.Context, payloads []types.IndustryPayload) ([]types.Industry, error) {
	industries := make([]types.Industry, len(payloads))
	for i, pl := range payloads {
		industries[i] = types.Industry{ID: i + 1, Name: pl.Name}
	}
	return industries, nil
}

type fakeSynth struct{ calls int }

func (s *fakeSynth) SynthesizeAll(context.Context) (synth.Counts, error) {
	s.calls++
	return synth.Counts{RoleSkills: 2, RoleIndustries: 2, SkillIndustries: 2, Prerequisites: 1}, nil
}

type fakeDeriver struct{ resourceCalls, pathwayCalls int }

func (d *fakeDeriver) GenerateResources(context.Context) (int, error) {
	d.resourceCalls++
	return 3, nil
}

func (d *fakeDeriver) GeneratePathways(context.Context, int) (int, error) {
	d.pathwayCalls++
	return 2, nil
}

type fixture struct {
	store     *fakeStore
	cache     *cache.Store
	gen       *fakeGenerator
	persister *fakePersister
	synth     *fakeSynth
	deriver   *fakeDeriver
	runner    *Runner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cacheStore, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		store:     newFakeStore(),
		cache:     cacheStore,
		gen:       &fakeGenerator{},
		persister: &fakePersister{},
		synth:     &fakeSynth{},
		deriver:   &fakeDeriver{},
	}
	f.runner = NewRunner(f.store, f.cache, f.gen, f.persister, f.synth, f.deriver, logger.NewNop())
	return f
}

func defaultOptions() Options {
	return Options{
		SkillCategories:    []string{"Software Development"},
		RoleCategories:     []string{"Software Development"},
		IndustryCategories: []string{"Technology"},
		PerCategory:        2,
		PathwayCount:       2,
	}
}

func TestRun_FreshDatabaseRunsAllStages(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))

	assert.Equal(t, 1, f.gen.skillCalls)
	assert.Equal(t, 1, f.gen.roleCalls)
	assert.Equal(t, 1, f.gen.industryCalls)
	assert.Equal(t, 1, f.synth.calls)
	assert.Equal(t, 1, f.deriver.resourceCalls)
	assert.Equal(t, 1, f.deriver.pathwayCalls)

	for _, stage := range []string{StageSkills, StageRoles, StageIndustries, StageRelationships, StageResources, StagePathways} {
		assert.Contains(t, f.store.markers, stage, "stage %s should be marked complete", stage)
	}
	assert.Equal(t, 7, f.store.markers[StageRelationships].ItemCount)
}

func TestRun_SecondInvocationDoesNothing(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))
	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))

	assert.Equal(t, 1, f.gen.skillCalls, "completed stages must not re-run")
	assert.Equal(t, 1, f.synth.calls)
	assert.Equal(t, 1, f.deriver.pathwayCalls)
}

func TestRun_NonEmptyCollectionSkippedWithoutMarker(t *testing.T) {
	f := newFixture(t)
	// Populated before the marker table existed.
	f.store.counts["skills"] = 10

	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))

	assert.Zero(t, f.gen.skillCalls, "non-empty collection must be left untouched")
	assert.Equal(t, 1, f.gen.roleCalls)
}

func TestRun_ProviderFailureKeepsPartialAndContinues(t *testing.T) {
	f := newFixture(t)
	f.gen.skillErr = &generator.ProviderError{Entity: "skill", Categories: []string{"B"}, Err: fmt.Errorf("timeout")}
	f.gen.partialSkills = []types.SkillPayload{{Name: "Go"}}

	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))

	// The partial batch is persisted, the stage stays unmarked, and the
	// rest of the pipeline still runs.
	require.Len(t, f.persister.skillInputs, 1)
	assert.Len(t, f.persister.skillInputs[0], 1)
	assert.NotContains(t, f.store.markers, StageSkills)
	assert.Equal(t, 1, f.gen.roleCalls)
	assert.Equal(t, 1, f.synth.calls)
}

func TestRun_ProviderFailureThenRerunCompletesFromCache(t *testing.T) {
	f := newFixture(t)
	f.gen.skillErr = &generator.ProviderError{Entity: "skill", Categories: []string{"B"}, Err: fmt.Errorf("timeout")}
	f.gen.partialSkills = []types.SkillPayload{{Name: "Go"}}

	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))
	require.NotContains(t, f.store.markers, StageSkills)

	// The next invocation finishes the stage from the cached partial batch;
	// the missing categories are not re-requested.
	f.gen.skillErr = nil
	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))

	assert.Equal(t, 1, f.gen.skillCalls, "cached partial must satisfy the stage without a provider call")
	require.Contains(t, f.store.markers, StageSkills)
	assert.Equal(t, 1, f.store.markers[StageSkills].ItemCount)
}

func TestRun_ResumesFromCacheWithoutProviderCall(t *testing.T) {
	f := newFixture(t)

	// A previous run generated two skills and died before persistence.
	cached := []types.SkillPayload{{Name: "Go"}, {Name: "SQL"}}
	require.NoError(t, cache.Write(f.cache, cache.KeySkills, cached))

	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))

	assert.Zero(t, f.gen.skillCalls, "cached payloads must not trigger a provider call")
	require.Len(t, f.persister.skillInputs, 1)
	assert.Len(t, f.persister.skillInputs[0], 2)
	assert.Equal(t, 2, f.store.markers[StageSkills].ItemCount)
}

func TestRun_PartialEdgeCollectionsRerunSynthesis(t *testing.T) {
	f := newFixture(t)
	f.store.counts["skills"] = 5
	f.store.counts["roles"] = 5
	f.store.counts["industries"] = 5
	f.store.counts["role_skills"] = 9
	// role_industries, skill_industries, prerequisites still empty.

	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))

	assert.Equal(t, 1, f.synth.calls, "partially synthesized graph must re-run")
}

func TestRun_AllEdgeCollectionsPopulatedSkipsSynthesis(t *testing.T) {
	f := newFixture(t)
	for _, c := range []string{"skills", "roles", "industries", "role_skills", "role_industries", "skill_industries", "skill_prerequisites"} {
		f.store.counts[c] = 3
	}

	require.NoError(t, f.runner.Run(context.Background(), defaultOptions()))

	assert.Zero(t, f.synth.calls)
	assert.Equal(t, 1, f.deriver.resourceCalls, "derived stages still run")
}
