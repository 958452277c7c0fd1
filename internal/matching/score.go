// Package matching holds the candidate-job matching core: the skill overlap
// scoring engine, the tri-track match status workflow, and the recommendation
// ranking helpers. Everything in this package is pure: no storage access, no
// side effects, safe for concurrent use.
package matching

import (
	"job-match-api/internal/models"

	"github.com/google/uuid"
)

// Score returns the fit percentage of a candidate skill set against a job's
// weighted requirement list, in [0, 100].
//
// The percentage is |shared| / |jobSkills| * 100 where shared is the
// intersection by skill ID. Requirement priorities are deliberately NOT part
// of this number; they only feed the in-demand skill ranking. A job with no
// declared requirements scores 0 for every candidate (never a division by
// zero).
//
// Skills are compared by their catalog ID only. Comparing populated skill
// documents field-by-field gives false negatives when two references to the
// same skill are populated to different depths, so no field other than the
// ID participates.
func Score(candidateSkillIDs []uuid.UUID, jobSkills []models.JobSkill) float64 {
	if len(jobSkills) == 0 {
		return 0
	}

	have := make(map[uuid.UUID]struct{}, len(candidateSkillIDs))
	for _, id := range candidateSkillIDs {
		have[id] = struct{}{}
	}

	shared := 0
	for _, js := range jobSkills {
		if _, ok := have[js.SkillID]; ok {
			shared++
		}
	}

	return float64(shared) / float64(len(jobSkills)) * 100
}

// OverlapCount returns the number of job requirements present in the
// candidate's skill set. This is the candidate-side recommendation heuristic:
// it answers "how many of this job's skills do I have", not "what fraction of
// the job's bar do I meet".
func OverlapCount(candidateSkillIDs []uuid.UUID, jobSkills []models.JobSkill) int {
	have := make(map[uuid.UUID]struct{}, len(candidateSkillIDs))
	for _, id := range candidateSkillIDs {
		have[id] = struct{}{}
	}

	overlap := 0
	for _, js := range jobSkills {
		if _, ok := have[js.SkillID]; ok {
			overlap++
		}
	}
	return overlap
}

// SkillBreakdown partitions the skills involved in one candidate/job pairing.
type SkillBreakdown struct {
	// Shared are the job requirements the candidate has.
	Shared []models.Skill
	// Missing are the job requirements the candidate lacks.
	Missing []models.Skill
	// Other are candidate skills the job does not ask for.
	Other []models.Skill
	// Percentage is Score() for the same pairing.
	Percentage float64
}

// Breakdown computes the shared/missing/other partition plus the fit
// percentage for a candidate skill set against a job requirement list.
// Inputs must carry populated Skill entries; requirement rows without one
// are skipped.
func Breakdown(candidateSkills []models.Skill, jobSkills []models.JobSkill) SkillBreakdown {
	required := make(map[uuid.UUID]struct{}, len(jobSkills))
	for _, js := range jobSkills {
		required[js.SkillID] = struct{}{}
	}
	have := make(map[uuid.UUID]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		have[s.ID] = struct{}{}
	}

	b := SkillBreakdown{
		Shared:  []models.Skill{},
		Missing: []models.Skill{},
		Other:   []models.Skill{},
	}
	for _, s := range candidateSkills {
		if _, ok := required[s.ID]; ok {
			b.Shared = append(b.Shared, s)
		} else {
			b.Other = append(b.Other, s)
		}
	}
	shared := 0
	for _, js := range jobSkills {
		if _, ok := have[js.SkillID]; ok {
			shared++
			continue
		}
		if js.Skill != nil {
			b.Missing = append(b.Missing, *js.Skill)
		}
	}

	if len(jobSkills) > 0 {
		b.Percentage = float64(shared) / float64(len(jobSkills)) * 100
	}
	return b
}
