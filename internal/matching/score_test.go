package matching

import (
	"testing"

	"job-match-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func req(id uuid.UUID, priority int) models.JobSkill {
	return models.JobSkill{SkillID: id, Priority: priority}
}

func TestScore_HalfOverlap(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	jobSkills := []models.JobSkill{req(a, 3), req(b, 2)}

	got := Score([]uuid.UUID{a}, jobSkills)

	assert.Equal(t, 50.0, got)
}

func TestScore_EmptyRequirements(t *testing.T) {
	// A job with no declared requirements cannot be matched against.
	got := Score([]uuid.UUID{uuid.New(), uuid.New()}, nil)
	assert.Equal(t, 0.0, got)

	got = Score(nil, []models.JobSkill{})
	assert.Equal(t, 0.0, got)
}

func TestScore_FullOverlap(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	jobSkills := []models.JobSkill{req(a, 1), req(b, 5), req(c, 3)}

	got := Score([]uuid.UUID{c, a, b, uuid.New()}, jobSkills)

	assert.Equal(t, 100.0, got)
}

func TestScore_NoOverlap(t *testing.T) {
	jobSkills := []models.JobSkill{req(uuid.New(), 2)}

	got := Score([]uuid.UUID{uuid.New()}, jobSkills)

	assert.Equal(t, 0.0, got)
}

func TestScore_Bounds(t *testing.T) {
	// Score stays in [0,100] for a spread of pool shapes, including
	// duplicate candidate skill references.
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	jobSkills := []models.JobSkill{req(a, 1), req(b, 2), req(c, 3)}

	cases := [][]uuid.UUID{
		nil,
		{a},
		{a, a, a},
		{a, b},
		{a, b, c, d},
		{d},
	}
	for _, skills := range cases {
		got := Score(skills, jobSkills)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestScore_DuplicateCandidateSkillsNotDoubleCounted(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	jobSkills := []models.JobSkill{req(a, 1), req(b, 1)}

	got := Score([]uuid.UUID{a, a, a}, jobSkills)

	assert.Equal(t, 50.0, got)
}

func TestScore_PrioritiesIgnored(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	low := []models.JobSkill{req(a, 1), req(b, 1)}
	high := []models.JobSkill{req(a, 5), req(b, 5)}

	assert.Equal(t, Score([]uuid.UUID{a}, low), Score([]uuid.UUID{a}, high))
}

func TestOverlapCount(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	jobSkills := []models.JobSkill{req(a, 1), req(b, 2), req(c, 3)}

	assert.Equal(t, 2, OverlapCount([]uuid.UUID{a, c}, jobSkills))
	assert.Equal(t, 0, OverlapCount([]uuid.UUID{uuid.New()}, jobSkills))
	assert.Equal(t, 0, OverlapCount([]uuid.UUID{a}, nil))
}

func TestBreakdown(t *testing.T) {
	golang := models.Skill{ID: uuid.New(), Name: "Go"}
	sql := models.Skill{ID: uuid.New(), Name: "SQL"}
	react := models.Skill{ID: uuid.New(), Name: "React"}
	docker := models.Skill{ID: uuid.New(), Name: "Docker"}

	candidateSkills := []models.Skill{golang, react}
	jobSkills := []models.JobSkill{
		{SkillID: golang.ID, Priority: 5, Skill: &golang},
		{SkillID: sql.ID, Priority: 3, Skill: &sql},
		{SkillID: docker.ID, Priority: 1, Skill: &docker},
	}

	b := Breakdown(candidateSkills, jobSkills)

	assert.Equal(t, []models.Skill{golang}, b.Shared)
	assert.Equal(t, []models.Skill{sql, docker}, b.Missing)
	assert.Equal(t, []models.Skill{react}, b.Other)
	assert.InDelta(t, 100.0/3.0, b.Percentage, 1e-9)
}

func TestBreakdown_EmptyRequirements(t *testing.T) {
	skill := models.Skill{ID: uuid.New(), Name: "Go"}

	b := Breakdown([]models.Skill{skill}, nil)

	assert.Empty(t, b.Shared)
	assert.Empty(t, b.Missing)
	assert.Equal(t, []models.Skill{skill}, b.Other)
	assert.Equal(t, 0.0, b.Percentage)
}
