package synth

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtorres/careergraph/internal/platform/logger"
	"github.com/jmtorres/careergraph/internal/types"
)

// edgeStore holds entities and composite-keyed edges in memory.
type edgeStore struct {
	skills     []types.Skill
	roles      []types.Role
	industries []types.Industry

	roleSkills      map[[2]int]types.RoleSkill
	roleIndustries  map[[2]int]types.RoleIndustry
	skillIndustries map[[2]int]types.SkillIndustry
	prerequisites   map[[2]int]types.SkillPrerequisite

	failPairs map[[2]int]bool
}

func newEdgeStore() *edgeStore {
	return &edgeStore{
		roleSkills:      make(map[[2]int]types.RoleSkill),
		roleIndustries:  make(map[[2]int]types.RoleIndustry),
		skillIndustries: make(map[[2]int]types.SkillIndustry),
		prerequisites:   make(map[[2]int]types.SkillPrerequisite),
		failPairs:       make(map[[2]int]bool),
	}
}

func (s *edgeStore) ListSkills(context.Context) ([]types.Skill, error)       { return s.skills, nil }
func (s *edgeStore) ListRoles(context.Context) ([]types.Role, error)         { return s.roles, nil }
func (s *edgeStore) ListIndustries(context.Context) ([]types.Industry, error) { return s.industries, nil }

func (s *edgeStore) UpsertRoleSkill(_ context.Context, e types.RoleSkill) error {
	key := [2]int{e.RoleID, e.SkillID}
	if s.failPairs[key] {
		return fmt.Errorf("write failed")
	}
	s.roleSkills[key] = e
	return nil
}

func (s *edgeStore) UpsertRoleIndustry(_ context.Context, e types.RoleIndustry) error {
	s.roleIndustries[[2]int{e.RoleID, e.IndustryID}] = e
	return nil
}

func (s *edgeStore) UpsertSkillIndustry(_ context.Context, e types.SkillIndustry) error {
	s.skillIndustries[[2]int{e.SkillID, e.IndustryID}] = e
	return nil
}

func (s *edgeStore) UpsertSkillPrerequisite(_ context.Context, e types.SkillPrerequisite) error {
	if e.SkillID == e.PrerequisiteID {
		return fmt.Errorf("self-loop")
	}
	s.prerequisites[[2]int{e.SkillID, e.PrerequisiteID}] = e
	return nil
}

func seededStore(nSkills, nRoles, nIndustries int) *edgeStore {
	store := newEdgeStore()
	for i := 1; i <= nSkills; i++ {
		difficulty := types.DifficultyMedium
		if i%2 == 0 {
			difficulty = types.DifficultyHigh
		}
		store.skills = append(store.skills, types.Skill{
			ID: i, Name: fmt.Sprintf("Skill %d", i), LearningDifficulty: difficulty,
		})
	}
	for i := 1; i <= nRoles; i++ {
		store.roles = append(store.roles, types.Role{ID: i, Title: fmt.Sprintf("Role %d", i)})
	}
	for i := 1; i <= nIndustries; i++ {
		store.industries = append(store.industries, types.Industry{ID: i, Name: fmt.Sprintf("Industry %d", i)})
	}
	return store
}

func newSynth(store *edgeStore, seed int64) *Synthesizer {
	return New(store, rand.New(rand.NewSource(seed)), logger.NewNop())
}

func TestSynthesizeRoleSkills_SingleRoleSingleSkill(t *testing.T) {
	// End-to-end scenario: one role, one skill, run twice. Exactly one edge
	// must exist after each run with attributes inside their domains.
	store := newEdgeStore()
	store.roles = []types.Role{{ID: 1, Title: "Frontend Developer"}}
	store.skills = []types.Skill{{ID: 1, Name: "JavaScript Programming", LearningDifficulty: types.DifficultyMedium}}

	s := newSynth(store, 1)

	count, err := s.SynthesizeRoleSkills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, store.roleSkills, 1)

	edge := store.roleSkills[[2]int{1, 1}]
	assert.Contains(t, []string{types.ImportanceCritical, types.ImportanceImportant, types.ImportanceHelpful}, edge.Importance)
	assert.GreaterOrEqual(t, edge.LevelRequired, 1)
	assert.LessOrEqual(t, edge.LevelRequired, 5)

	// Second run may refresh attributes but never duplicates the pair.
	_, err = s.SynthesizeRoleSkills(context.Background())
	require.NoError(t, err)
	assert.Len(t, store.roleSkills, 1)
}

func TestSynthesizeRoleSkills_SampleBounds(t *testing.T) {
	store := seededStore(10, 4, 0)
	s := newSynth(store, 7)

	count, err := s.SynthesizeRoleSkills(context.Background())
	require.NoError(t, err)

	// 2-3 skills per role, all distinct pairs.
	assert.GreaterOrEqual(t, count, 2*len(store.roles))
	assert.LessOrEqual(t, count, 3*len(store.roles))
	assert.Equal(t, count, len(store.roleSkills))
}

func TestSynthesizeRoleSkills_EmptyCollectionSkips(t *testing.T) {
	store := seededStore(5, 0, 0)
	s := newSynth(store, 1)

	count, err := s.SynthesizeRoleSkills(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, store.roleSkills)
}

func TestSynthesizeRoleSkills_ContinuesPastWriteFailure(t *testing.T) {
	store := newEdgeStore()
	store.roles = []types.Role{{ID: 1, Title: "Role 1"}}
	store.skills = []types.Skill{
		{ID: 1, Name: "Skill 1"}, {ID: 2, Name: "Skill 2"}, {ID: 3, Name: "Skill 3"},
	}
	store.failPairs[[2]int{1, 1}] = true
	store.failPairs[[2]int{1, 2}] = true
	store.failPairs[[2]int{1, 3}] = true

	s := newSynth(store, 1)
	count, err := s.SynthesizeRoleSkills(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSynthesizePrerequisites_OnlyHighDifficulty(t *testing.T) {
	store := seededStore(8, 0, 0)
	s := newSynth(store, 11)

	count, err := s.SynthesizePrerequisites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, count, len(store.prerequisites))

	highByID := make(map[int]bool)
	for _, sk := range store.skills {
		if sk.LearningDifficulty == types.DifficultyHigh {
			highByID[sk.ID] = true
		}
	}
	for key, edge := range store.prerequisites {
		assert.True(t, highByID[key[0]], "skill %d declares prerequisites but is not high difficulty", key[0])
		assert.NotEqual(t, edge.SkillID, edge.PrerequisiteID, "self-prerequisite")
		assert.GreaterOrEqual(t, edge.AcquisitionOrder, 1)
	}
}

func TestSynthesizePrerequisites_TooFewSkills(t *testing.T) {
	store := newEdgeStore()
	store.skills = []types.Skill{{ID: 1, Name: "Solo", LearningDifficulty: types.DifficultyHigh}}
	s := newSynth(store, 1)

	count, err := s.SynthesizePrerequisites(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSynthesizeAll_DeterministicWithSameSeed(t *testing.T) {
	run := func(seed int64) *edgeStore {
		store := seededStore(6, 3, 3)
		s := newSynth(store, seed)
		_, err := s.SynthesizeAll(context.Background())
		require.NoError(t, err)
		return store
	}

	a, b := run(42), run(42)
	assert.Equal(t, a.roleSkills, b.roleSkills)
	assert.Equal(t, a.roleIndustries, b.roleIndustries)
	assert.Equal(t, a.skillIndustries, b.skillIndustries)
	assert.Equal(t, a.prerequisites, b.prerequisites)
}

func TestSynthesizeAll_Counts(t *testing.T) {
	store := seededStore(6, 3, 3)
	s := newSynth(store, 5)

	counts, err := s.SynthesizeAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(store.roleSkills), counts.RoleSkills)
	assert.Equal(t, len(store.roleIndustries), counts.RoleIndustries)
	assert.Equal(t, len(store.skillIndustries), counts.SkillIndustries)
	assert.Equal(t, len(store.prerequisites), counts.Prerequisites)
	assert.Equal(t, counts.Total(),
		counts.RoleSkills+counts.RoleIndustries+counts.SkillIndustries+counts.Prerequisites)
}

func TestSynthesizeSkillIndustries_EnumDomains(t *testing.T) {
	store := seededStore(4, 0, 3)
	s := newSynth(store, 9)

	_, err := s.SynthesizeSkillIndustries(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, store.skillIndustries)

	for _, edge := range store.skillIndustries {
		assert.Contains(t, []string{types.ImportanceCritical, types.ImportanceImportant, types.ImportanceHelpful}, edge.Importance)
		assert.Contains(t, []string{types.TrendIncreasing, types.TrendStable, types.TrendDecreasing}, edge.TrendDirection)
	}
}
