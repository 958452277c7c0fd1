package matching

import (
	"testing"

	"job-match-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateWith(name string, skills ...models.Skill) models.Candidate {
	return models.Candidate{ID: uuid.New(), Name: name, Skills: skills}
}

func TestRankCandidates_ThresholdIsInclusive(t *testing.T) {
	a := models.Skill{ID: uuid.New(), Name: "Go"}
	b := models.Skill{ID: uuid.New(), Name: "SQL"}
	jobSkills := []models.JobSkill{req(a.ID, 3), req(b.ID, 2)}

	exact := candidateWith("exactly at threshold", a) // scores 50
	below := candidateWith("below threshold")         // scores 0

	ranked := RankCandidates(jobSkills, 50, []models.Candidate{exact, below}, nil)

	require.Len(t, ranked, 1)
	assert.Equal(t, exact.ID, ranked[0].Candidate.ID)
	assert.Equal(t, 50.0, ranked[0].Score)
}

func TestRankCandidates_SortedByScoreDescending(t *testing.T) {
	a := models.Skill{ID: uuid.New()}
	b := models.Skill{ID: uuid.New()}
	c := models.Skill{ID: uuid.New()}
	jobSkills := []models.JobSkill{req(a.ID, 1), req(b.ID, 1), req(c.ID, 1)}

	full := candidateWith("full", a, b, c)
	partial := candidateWith("partial", a, b)
	slim := candidateWith("slim", a)

	ranked := RankCandidates(jobSkills, 0, []models.Candidate{slim, full, partial}, nil)

	require.Len(t, ranked, 3)
	assert.Equal(t, full.ID, ranked[0].Candidate.ID)
	assert.Equal(t, partial.ID, ranked[1].Candidate.ID)
	assert.Equal(t, slim.ID, ranked[2].Candidate.ID)
}

func TestRankCandidates_ExcludesAlreadyMatched(t *testing.T) {
	a := models.Skill{ID: uuid.New()}
	jobSkills := []models.JobSkill{req(a.ID, 5)}

	matched := candidateWith("perfect but already matched", a)
	fresh := candidateWith("fresh", a)

	exclude := map[uuid.UUID]struct{}{matched.ID: {}}
	ranked := RankCandidates(jobSkills, 0, []models.Candidate{matched, fresh}, exclude)

	// A candidate with an existing match is excluded no matter how well
	// they score.
	require.Len(t, ranked, 1)
	assert.Equal(t, fresh.ID, ranked[0].Candidate.ID)
}

func TestRankCandidates_ZeroThresholdKeepsEveryone(t *testing.T) {
	jobSkills := []models.JobSkill{req(uuid.New(), 1)}
	nobody := candidateWith("no overlap at all")

	ranked := RankCandidates(jobSkills, 0, []models.Candidate{nobody}, nil)

	require.Len(t, ranked, 1)
	assert.Equal(t, 0.0, ranked[0].Score)
}

func TestRankCandidates_EmptyPool(t *testing.T) {
	ranked := RankCandidates([]models.JobSkill{req(uuid.New(), 1)}, 50, nil, nil)
	assert.Empty(t, ranked)
	assert.NotNil(t, ranked)
}

func TestRankJobs_SortedByOverlapCount(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	three := models.Job{ID: uuid.New(), Title: "three overlaps",
		JobSkills: []models.JobSkill{req(a, 1), req(b, 1), req(c, 1)}}
	one := models.Job{ID: uuid.New(), Title: "one overlap",
		JobSkills: []models.JobSkill{req(a, 1), req(uuid.New(), 1)}}
	none := models.Job{ID: uuid.New(), Title: "no overlap",
		JobSkills: []models.JobSkill{req(uuid.New(), 1)}}

	ranked := RankJobs([]uuid.UUID{a, b, c}, []models.Job{one, none, three})

	require.Len(t, ranked, 2)
	assert.Equal(t, three.ID, ranked[0].Job.ID)
	assert.Equal(t, 3, ranked[0].Overlap)
	assert.Equal(t, one.ID, ranked[1].Job.ID)
	assert.Equal(t, 1, ranked[1].Overlap)
}

func TestRankJobs_CountNotPercentage(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// 2 of 10 requirements met: low percentage, high count.
	wide := models.Job{ID: uuid.New(), Title: "wide"}
	wide.JobSkills = []models.JobSkill{req(a, 1), req(b, 1)}
	for i := 0; i < 8; i++ {
		wide.JobSkills = append(wide.JobSkills, req(uuid.New(), 1))
	}

	// 1 of 1 requirements met: 100%, but a lower overlap count.
	narrow := models.Job{ID: uuid.New(), Title: "narrow",
		JobSkills: []models.JobSkill{req(a, 1)}}

	ranked := RankJobs([]uuid.UUID{a, b}, []models.Job{narrow, wide})

	// The candidate-side feed ranks by count, so the wide job wins even
	// though the narrow one is a perfect percentage fit.
	require.Len(t, ranked, 2)
	assert.Equal(t, wide.ID, ranked[0].Job.ID)
}

func TestRankJobs_DropsJobsWithoutOverlap(t *testing.T) {
	job := models.Job{ID: uuid.New(), JobSkills: []models.JobSkill{req(uuid.New(), 3)}}
	empty := models.Job{ID: uuid.New()}

	ranked := RankJobs([]uuid.UUID{uuid.New()}, []models.Job{job, empty})

	assert.Empty(t, ranked)
}
