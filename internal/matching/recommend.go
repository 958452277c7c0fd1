package matching

import (
	"sort"

	"job-match-api/internal/models"

	"github.com/google/uuid"
)

// CandidateScore pairs a candidate with their fit percentage for one job.
type CandidateScore struct {
	Candidate models.Candidate
	Score     float64
}

// RankCandidates answers "which candidates should this job's employer see".
//
// Candidates in exclude (those with an existing match against the job,
// whatever its status) are skipped. The rest are scored with Score and kept
// when score >= threshold; the threshold is inclusive. Results come back
// sorted by score descending.
func RankCandidates(jobSkills []models.JobSkill, threshold float64, pool []models.Candidate, exclude map[uuid.UUID]struct{}) []CandidateScore {
	ranked := make([]CandidateScore, 0, len(pool))
	for _, c := range pool {
		if _, matched := exclude[c.ID]; matched {
			continue
		}
		ids := skillIDs(c.Skills)
		s := Score(ids, jobSkills)
		if s >= threshold {
			ranked = append(ranked, CandidateScore{Candidate: c, Score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// JobOverlap pairs a job with the number of its requirements the candidate
// already has.
type JobOverlap struct {
	Job     models.Job
	Overlap int
}

// RankJobs answers "which jobs are most relevant to this candidate". Jobs
// with no skill overlap at all are dropped; the rest are sorted by
// overlapping-skill count descending.
//
// This is intentionally a different heuristic from RankCandidates: the
// employer side asks whether a candidate clears the job's percentage bar,
// the candidate side asks which postings mention the most of their skills.
// Do not fold the two into one function.
func RankJobs(candidateSkillIDs []uuid.UUID, jobs []models.Job) []JobOverlap {
	ranked := make([]JobOverlap, 0, len(jobs))
	for _, j := range jobs {
		n := OverlapCount(candidateSkillIDs, j.JobSkills)
		if n > 0 {
			ranked = append(ranked, JobOverlap{Job: j, Overlap: n})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Overlap > ranked[j].Overlap
	})
	return ranked
}

func skillIDs(skills []models.Skill) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(skills))
	for _, s := range skills {
		ids = append(ids, s.ID)
	}
	return ids
}
