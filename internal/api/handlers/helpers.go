package handlers

import (
	"fmt"

	"job-match-api/internal/matching"
	"job-match-api/internal/models"
	"job-match-api/internal/transport/dto"

	"github.com/go-playground/validator"
)

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "uuid":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		}
	}
	return errorsMap
}

// MapSkillModelToSkillResponse converts a models.Skill to a dto.SkillResponse
func MapSkillModelToSkillResponse(skill *models.Skill) dto.SkillResponse {
	return dto.SkillResponse{
		ID:        skill.ID,
		Name:      skill.Name,
		Category:  skill.Category,
		CreatedAt: skill.CreatedAt,
	}
}

func mapSkillModels(skills []models.Skill) []dto.SkillResponse {
	resp := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		resp = append(resp, MapSkillModelToSkillResponse(&skills[i]))
	}
	return resp
}

// MapCandidateModelToCandidateResponse converts a models.Candidate to a dto.CandidateResponse
func MapCandidateModelToCandidateResponse(candidate *models.Candidate) dto.CandidateResponse {
	return dto.CandidateResponse{
		ID:             candidate.ID,
		Email:          candidate.Email,
		Name:           candidate.Name,
		Bio:            candidate.Bio,
		Location:       candidate.Location,
		MatchThreshold: candidate.MatchThreshold,
		Skills:         mapSkillModels(candidate.Skills),
		CreatedAt:      candidate.CreatedAt,
		UpdatedAt:      candidate.UpdatedAt,
	}
}

// MapEmployerModelToEmployerResponse converts a models.Employer to a dto.EmployerResponse
func MapEmployerModelToEmployerResponse(employer *models.Employer) dto.EmployerResponse {
	return dto.EmployerResponse{
		ID:        employer.ID,
		Email:     employer.Email,
		Name:      employer.Name,
		Company:   employer.Company,
		CreatedAt: employer.CreatedAt,
	}
}

// MapJobModelToJobResponse converts a models.Job to a dto.JobResponse
func MapJobModelToJobResponse(job *models.Job) dto.JobResponse {
	skills := make([]dto.JobSkillResponse, 0, len(job.JobSkills))
	for _, js := range job.JobSkills {
		entry := dto.JobSkillResponse{Priority: js.Priority}
		if js.Skill != nil {
			entry.Skill = MapSkillModelToSkillResponse(js.Skill)
		} else {
			entry.Skill = dto.SkillResponse{ID: js.SkillID}
		}
		skills = append(skills, entry)
	}
	return dto.JobResponse{
		ID:             job.ID,
		EmployerID:     job.EmployerID,
		Title:          job.Title,
		Description:    job.Description,
		Type:           job.Type,
		Location:       job.Location,
		IsRemote:       job.IsRemote,
		WillSponsor:    job.WillSponsor,
		Salary:         job.Salary,
		MatchThreshold: job.MatchThreshold,
		Skills:         skills,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// MapMatchModelToMatchResponse converts a models.Match to a dto.MatchResponse
func MapMatchModelToMatchResponse(match *models.Match) dto.MatchResponse {
	return dto.MatchResponse{
		ID:          match.ID,
		JobID:       match.JobID,
		CandidateID: match.CandidateID,
		MatchStatus: dto.MatchStatusResponse{
			Value:    string(match.OverallStatus),
			Modified: match.OverallModified,
		},
		CandidateStatus: dto.MatchStatusResponse{
			Value:    string(match.CandidateStatus),
			Modified: match.CandidateModified,
		},
		EmployerStatus: dto.MatchStatusResponse{
			Value:    string(match.EmployerStatus),
			Modified: match.EmployerModified,
		},
		InterviewID: match.InterviewID,
		CreatedAt:   match.CreatedAt,
		UpdatedAt:   match.UpdatedAt,
	}
}

// MapInterviewModelToInterviewResponse converts a models.Interview to a dto.InterviewResponse
func MapInterviewModelToInterviewResponse(interview *models.Interview) dto.InterviewResponse {
	return dto.InterviewResponse{
		ID:            interview.ID,
		MatchID:       interview.MatchID,
		InterviewDate: interview.InterviewDate,
		RoomName:      interview.RoomName,
		CreatedAt:     interview.CreatedAt,
	}
}

// MapBreakdownToSharedSkillsResponse converts a matching.SkillBreakdown to a dto.SharedSkillsResponse
func MapBreakdownToSharedSkillsResponse(b *matching.SkillBreakdown) dto.SharedSkillsResponse {
	return dto.SharedSkillsResponse{
		Shared:     mapSkillModels(b.Shared),
		Missing:    mapSkillModels(b.Missing),
		Other:      mapSkillModels(b.Other),
		Percentage: b.Percentage,
	}
}
