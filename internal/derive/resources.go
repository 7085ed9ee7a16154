package derive

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jmtorres/careergraph/internal/types"
)

var (
	resourceTypes     = []string{"course", "book", "tutorial", "video", "interactive"}
	resourceProviders = []string{"Coursera", "Udemy", "O'Reilly", "edX", "Pluralsight", "YouTube"}
	difficultyLevels  = []string{"beginner", "intermediate", "advanced"}
	costTypes         = []string{types.CostFree, types.CostPaid, types.CostSubscription}
)

// GenerateResources derives 1-2 learning resources for every skill. Resource
// ids are deterministic per (skill, index), so a rerun overwrites the same
// records instead of duplicating them.
func (d *Deriver) GenerateResources(ctx context.Context) (int, error) {
	skills, err := d.store.ListSkills(ctx)
	if err != nil {
		return 0, err
	}
	if len(skills) == 0 {
		d.log.Warn("skipping resource generation, no skills persisted")
		return 0, nil
	}

	count := 0
	for _, skill := range skills {
		n := d.between(1, 2)
		for i := 0; i < n; i++ {
			res := d.buildResource(skill, i)
			if err := d.store.UpsertLearningResource(ctx, res); err != nil {
				d.log.Error("skipping learning resource", "id", res.ID, "error", err)
				continue
			}
			d.log.Info("saved learning resource", "id", res.ID, "skill", skill.Name)
			count++
		}
	}
	return count, nil
}

func (d *Deriver) buildResource(skill types.Skill, index int) types.LearningResource {
	resType := d.pick(resourceTypes)
	difficulty := d.pick(difficultyLevels)
	costType := d.pick(costTypes)

	cost := ""
	switch costType {
	case types.CostPaid:
		cost = fmt.Sprintf("$%d", d.between(2, 20)*10-1)
	case types.CostSubscription:
		cost = fmt.Sprintf("$%d/month", d.between(10, 50))
	}

	slug := strings.ToLower(strings.ReplaceAll(skill.Name, " ", "-"))
	rating := math.Round((3.5+d.rng.Float64()*1.5)*10) / 10

	return types.LearningResource{
		ID:             types.ResourceID(skill.ID, index),
		Title:          fmt.Sprintf("%s: %s", capitalize(resType), skill.Name),
		Type:           resType,
		Provider:       d.pick(resourceProviders),
		URL:            fmt.Sprintf("https://learning.example.com/%s/%s", resType, slug),
		Description:    fmt.Sprintf("A %s %s covering %s.", difficulty, resType, skill.Name),
		SkillID:        skill.ID,
		Difficulty:     difficulty,
		EstimatedHours: d.between(5, 40),
		CostType:       costType,
		Cost:           cost,
		Tags:           []string{skill.Category, difficulty, resType},
		Rating:         rating,
		ReviewCount:    d.between(50, 5000),
		RelevanceScore: d.between(6, 10),
		MatchReason:    fmt.Sprintf("Directly teaches %s at %s level.", skill.Name, difficulty),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
