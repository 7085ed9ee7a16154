package derive

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmtorres/careergraph/internal/types"
)

// requiredSkillsPerStep bounds how many RoleSkill edges populate a step's
// requiredSkills list.
const requiredSkillsPerStep = 3

// yearsPerStep is the informational time estimate for each transition.
const yearsPerStep = 1.5

// GeneratePathways derives up to n career pathways between distinct roles.
// Each pathway starts at its starting role, ends at its target role, and may
// route through intermediate roles distinct from both endpoints and from each
// other. Ids continue from MaxCareerPathwayID so reruns extend rather than
// collide; the Role.careerPath denormalization is back-filled afterwards.
func (d *Deriver) GeneratePathways(ctx context.Context, n int) (int, error) {
	roles, err := d.store.ListRoles(ctx)
	if err != nil {
		return 0, err
	}
	if len(roles) < 2 {
		d.log.Warn("skipping pathway generation", "roles", len(roles))
		return 0, nil
	}

	maxID, err := d.store.MaxCareerPathwayID(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	transitions := newTransitionSet()
	for i := 0; i < n; i++ {
		pathway, ok := d.buildPathway(ctx, roles, maxID+count+1)
		if !ok {
			continue
		}
		if err := d.store.UpsertCareerPathway(ctx, pathway); err != nil {
			d.log.Error("skipping pathway", "id", pathway.ID, "error", err)
			continue
		}
		d.log.Info("saved career pathway", "id", pathway.ID, "name", pathway.Name)
		transitions.addRoute(pathway.Steps)
		for _, route := range pathway.AlternativeRoutes {
			transitions.addRoute(route.Steps)
		}
		count++
	}

	if count > 0 {
		d.backfillCareerPaths(ctx, roles, transitions)
	}
	return count, nil
}

func (d *Deriver) buildPathway(ctx context.Context, roles []types.Role, id int) (types.CareerPathway, bool) {
	perm := d.rng.Perm(len(roles))
	start, target := roles[perm[0]], roles[perm[1]]

	nIntermediate := d.between(0, 2)
	if nIntermediate > len(perm)-2 {
		nIntermediate = len(perm) - 2
	}
	route := []types.Role{start}
	for i := 0; i < nIntermediate; i++ {
		route = append(route, roles[perm[2+i]])
	}
	route = append(route, target)

	steps := d.buildSteps(ctx, route)

	pathway := types.CareerPathway{
		ID:                 id,
		Name:               fmt.Sprintf("%s to %s", start.Title, target.Title),
		Description:        fmt.Sprintf("A progression from %s to %s.", start.Title, target.Title),
		StartingRoleID:     start.ID,
		TargetRoleID:       target.ID,
		EstimatedTimeYears: yearsPerStep * float64(len(steps)-1),
		Steps:              steps,
	}

	// An alternative route is a parallel 3-step path through an intermediate
	// role distinct from both endpoints.
	if len(roles) >= 3 && nIntermediate+2 < len(perm) {
		alt := roles[perm[nIntermediate+2]]
		altSteps := d.buildSteps(ctx, []types.Role{start, alt, target})
		pathway.AlternativeRoutes = []types.AlternativeRoute{{
			Name:        fmt.Sprintf("Via %s", alt.Title),
			Description: fmt.Sprintf("An alternative progression through %s.", alt.Title),
			Steps:       altSteps,
		}}
	}

	return pathway, true
}

// buildSteps assigns contiguous 1-based step numbers and populates each
// step's requiredSkills from the role's persisted RoleSkill edges. A role
// with no edges simply gets an empty list; that is a referential gap, not an
// error.
func (d *Deriver) buildSteps(ctx context.Context, route []types.Role) []types.PathwayStep {
	steps := make([]types.PathwayStep, 0, len(route))
	for i, role := range route {
		step := types.PathwayStep{
			Step:        i + 1,
			RoleID:      role.ID,
			Timeframe:   fmt.Sprintf("%d-%d years", i, i+2),
			Description: fmt.Sprintf("Work as a %s.", role.Title),
		}

		edges, err := d.store.ListRoleSkillsByRole(ctx, role.ID)
		if err != nil {
			d.log.Warn("no role-skill edges for step", "roleId", role.ID, "error", err)
		}
		for j, edge := range edges {
			if j == requiredSkillsPerStep {
				break
			}
			step.RequiredSkills = append(step.RequiredSkills, edge.SkillID)
		}

		steps = append(steps, step)
	}
	return steps
}

// transitionSet accumulates the role adjacency observed across all generated
// routes, used to back-fill Role.careerPath.
type transitionSet struct {
	next     map[int]map[int]bool
	previous map[int]map[int]bool
}

func newTransitionSet() *transitionSet {
	return &transitionSet{
		next:     make(map[int]map[int]bool),
		previous: make(map[int]map[int]bool),
	}
}

func (t *transitionSet) addRoute(steps []types.PathwayStep) {
	for i := 0; i+1 < len(steps); i++ {
		from, to := steps[i].RoleID, steps[i+1].RoleID
		if t.next[from] == nil {
			t.next[from] = make(map[int]bool)
		}
		if t.previous[to] == nil {
			t.previous[to] = make(map[int]bool)
		}
		t.next[from][to] = true
		t.previous[to][from] = true
	}
}

func (d *Deriver) backfillCareerPaths(ctx context.Context, roles []types.Role, transitions *transitionSet) {
	titles := make(map[int]string, len(roles))
	for _, r := range roles {
		titles[r.ID] = r.Title
	}

	for _, role := range roles {
		nextIDs, prevIDs := transitions.next[role.ID], transitions.previous[role.ID]
		if len(nextIDs) == 0 && len(prevIDs) == 0 {
			continue
		}

		path := types.CareerPath{Next: []string{}, Previous: []string{}}
		for id := range nextIDs {
			path.Next = append(path.Next, titles[id])
		}
		for id := range prevIDs {
			path.Previous = append(path.Previous, titles[id])
		}
		sort.Strings(path.Next)
		sort.Strings(path.Previous)

		if err := d.store.UpdateRoleCareerPath(ctx, role.ID, path); err != nil {
			d.log.Error("failed to back-fill career path", "roleId", role.ID, "error", err)
		}
	}
}
