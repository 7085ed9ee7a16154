package derive

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

// deriveStore holds persisted entities, edges and derived artifacts in memory.
type deriveStore struct {
	skills      []types.Skill
	roles       []types.Role
	roleSkills  map[int][]types.RoleSkill // keyed by role id
	resources   map[string]types.LearningResource
	pathways    map[int]types.CareerPathway
	careerPaths map[int]types.CareerPath
}

func newDeriveStore() *deriveStore {
	return &deriveStore{
		roleSkills:  make(map[int][]types.RoleSkill),
		resources:   make(map[string]types.LearningResource),
		pathways:    make(map[int]types.CareerPathway),
		careerPaths: make(map[int]types.CareerPath),
	}
}

func (s *deriveStore) ListSkills(context.Context) ([]types.Skill, error) { return s.skills, nil }
func (s *deriveStore) ListRoles(context.Context) ([]types.Role, error)   { return s.roles, nil }

func (s *deriveStore) ListRoleSkillsByRole(_ context.Context, roleID int) ([]types.RoleSkill, error) {
	return s.roleSkills[roleID], nil
}

func (s *deriveStore) UpsertLearningResource(_ context.Context, res types.LearningResource) error {
	s.resources[res.ID] = res
	return nil
}

func (s *deriveStore) MaxCareerPathwayID(context.Context) (int, error) {
	max := 0
	for id := range s.pathways {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (s *deriveStore) UpsertCareerPathway(_ context.Context, p types.CareerPathway) error {
	s.pathways[p.ID] = p
	return nil
}

func (s *deriveStore) UpdateRoleCareerPath(_ context.Context, roleID int, path types.CareerPath) error {
	s.careerPaths[roleID] = path
	return nil
}

func fixtureStore(nSkills, nRoles int) *deriveStore {
	store := newDeriveStore()
	for i := 1; i <= nSkills; i++ {
		store.skills = append(store.skills, types.Skill{
			ID: i, Name: fmt.Sprintf("Skill %d", i), Category: "Software Development",
		})
	}
	for i := 1; i <= nRoles; i++ {
		store.roles = append(store.roles, types.Role{ID: i, Title: fmt.Sprintf("Role %d", i)})
		// Every role requires a handful of skills.
		for j := 1; j <= min(4, nSkills); j++ {
			store.roleSkills[i] = append(store.roleSkills[i], types.RoleSkill{
				RoleID: i, SkillID: j, Importance: types.ImportanceImportant, LevelRequired: 3,
			})
		}
	}
	return store
}

func newDeriver(store *deriveStore, seed int64) *Deriver {
	return New(store, rand.New(rand.NewSource(seed)), logger.NewNop())
}

func TestGenerateResources_OneToTwoPerSkill(t *testing.T) {
	store := fixtureStore(5, 0)
	d := newDeriver(store, 3)

	count, err := d.GenerateResources(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, count, 5)
	assert.LessOrEqual(t, count, 10)
	assert.Equal(t, count, len(store.resources))

	for id, res := range store.resources {
		assert.Equal(t, types.ResourceID(res.SkillID, resourceIndex(t, id)), id)
		assert.Contains(t, costTypes, res.CostType)
		assert.GreaterOrEqual(t, res.Rating, 0.0)
		assert.LessOrEqual(t, res.Rating, 5.0)
		assert.GreaterOrEqual(t, res.RelevanceScore, 1)
		assert.LessOrEqual(t, res.RelevanceScore, 10)
	}
}

// resourceIndex extracts the trailing index from a res-{skillId}-{index} id.
func resourceIndex(t *testing.T, id string) int {
	t.Helper()
	var skillID, index int
	_, err := fmt.Sscanf(id, "res-%d-%d", &skillID, &index)
	require.NoError(t, err)
	return index
}

func TestGenerateResources_RerunOverwrites(t *testing.T) {
	store := fixtureStore(4, 0)

	_, err := newDeriver(store, 3).GenerateResources(context.Background())
	require.NoError(t, err)
	firstCount := len(store.resources)

	// Same seed, same store: the deterministic ids address the same records.
	_, err = newDeriver(store, 3).GenerateResources(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstCount, len(store.resources))
}

func TestGenerateResources_NoSkills(t *testing.T) {
	d := newDeriver(newDeriveStore(), 1)
	count, err := d.GenerateResources(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func assertRouteInvariants(t *testing.T, steps []types.PathwayStep, startID, targetID int) {
	t.Helper()
	require.NotEmpty(t, steps)
	for i, step := range steps {
		assert.Equal(t, i+1, step.Step, "steps must be contiguous and 1-based")
		assert.LessOrEqual(t, len(step.RequiredSkills), requiredSkillsPerStep)
	}
	assert.Equal(t, startID, steps[0].RoleID)
	assert.Equal(t, targetID, steps[len(steps)-1].RoleID)
}

func TestGeneratePathways_StepInvariants(t *testing.T) {
	store := fixtureStore(6, 6)
	d := newDeriver(store, 17)

	count, err := d.GeneratePathways(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, store.pathways, 3)

	for _, p := range store.pathways {
		assert.NotEqual(t, p.StartingRoleID, p.TargetRoleID)
		assertRouteInvariants(t, p.Steps, p.StartingRoleID, p.TargetRoleID)

		// Intermediate roles are distinct from the endpoints and each other.
		seen := map[int]bool{}
		for _, step := range p.Steps {
			assert.False(t, seen[step.RoleID], "role %d appears twice in route", step.RoleID)
			seen[step.RoleID] = true
		}

		// Alternative routes share the pathway's endpoints.
		for _, route := range p.AlternativeRoutes {
			assertRouteInvariants(t, route.Steps, p.StartingRoleID, p.TargetRoleID)
		}

		assert.InDelta(t, yearsPerStep*float64(len(p.Steps)-1), p.EstimatedTimeYears, 0.001)
	}
}

func TestGeneratePathways_RequiredSkillsFromEdges(t *testing.T) {
	store := fixtureStore(6, 3)
	d := newDeriver(store, 5)

	_, err := d.GeneratePathways(context.Background(), 2)
	require.NoError(t, err)

	for _, p := range store.pathways {
		for _, step := range p.Steps {
			edges := store.roleSkills[step.RoleID]
			require.NotEmpty(t, step.RequiredSkills)
			for i, skillID := range step.RequiredSkills {
				assert.Equal(t, edges[i].SkillID, skillID)
			}
		}
	}
}

func TestGeneratePathways_TooFewRoles(t *testing.T) {
	store := fixtureStore(3, 1)
	d := newDeriver(store, 1)

	count, err := d.GeneratePathways(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, store.pathways)
}

func TestGeneratePathways_BackfillsCareerPath(t *testing.T) {
	store := fixtureStore(4, 5)
	d := newDeriver(store, 23)

	_, err := d.GeneratePathways(context.Background(), 3)
	require.NoError(t, err)
	require.NotEmpty(t, store.careerPaths)

	titles := map[int]string{}
	for _, r := range store.roles {
		titles[r.ID] = r.Title
	}

	// Every starting role must list a next step; every target a previous one.
	for _, p := range store.pathways {
		startPath := store.careerPaths[p.StartingRoleID]
		assert.Contains(t, startPath.Next, titles[p.Steps[1].RoleID])

		targetPath := store.careerPaths[p.TargetRoleID]
		assert.Contains(t, targetPath.Previous, titles[p.Steps[len(p.Steps)-2].RoleID])
	}
}

func TestGeneratePathways_IDsContinueFromMax(t *testing.T) {
	store := fixtureStore(3, 4)
	store.pathways[7] = types.CareerPathway{ID: 7, StartingRoleID: 1, TargetRoleID: 2}

	d := newDeriver(store, 2)
	count, err := d.GeneratePathways(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, exists := store.pathways[8]
	assert.True(t, exists, "new pathway should take id max+1")
}
