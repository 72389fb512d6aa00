package service

import (
	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/model"
)

// ── model → dto 转换 ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

func toCareerPathResponse(p *model.CareerPath) dto.CareerPathResponse {
	return dto.CareerPathResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		SalaryRangeMin:  p.SalaryRangeMin,
		SalaryRangeMax:  p.SalaryRangeMax,
		EducationLevel:  p.EducationLevel,
		RequiredSkills:  dto.NonNil([]string(p.RequiredSkills)),
		GrowthOutlook:   p.GrowthOutlook,
		WorkEnvironment: p.WorkEnvironment,
		IsActive:        p.IsActive,
		CreatedAt:       dto.FormatTime(p.CreatedAt),
		UpdatedAt:       dto.FormatTime(p.UpdatedAt),
	}
}

func toCareerPathResponses(paths []model.CareerPath) []dto.CareerPathResponse {
	out := make([]dto.CareerPathResponse, 0, len(paths))
	for i := range paths {
		out = append(out, toCareerPathResponse(&paths[i]))
	}
	return out
}

func toAssessmentResponse(a *model.CareerAssessment) dto.AssessmentResponse {
	questions := make([]dto.QuestionResponse, 0, len(a.Questions))
	for _, q := range a.Questions {
		questions = append(questions, dto.QuestionResponse{
			ID:       q.ID,
			Question: q.Question,
			Type:     string(q.Type),
			Options:  dto.NonNil(q.Options),
		})
	}
	return dto.AssessmentResponse{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Instructions: a.Instructions,
		Questions:    questions,
		IsActive:     a.IsActive,
		CreatedAt:    dto.FormatTime(a.CreatedAt),
		UpdatedAt:    dto.FormatTime(a.UpdatedAt),
	}
}

func toResultResponse(r *model.AssessmentResult) dto.AssessmentResultResponse {
	answers := make([]dto.AnswerResponse, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, dto.AnswerResponse{
			QuestionID: a.QuestionID,
			Selected:   dto.NonNil(a.Selected),
		})
	}

	resp := dto.AssessmentResultResponse{
		ID:                 r.ID,
		User:               r.UserID,
		Assessment:         r.AssessmentID,
		Answers:            answers,
		RecommendedCareers: dto.NonNil([]uint(r.RecommendedCareers)),
		SessionID:          r.SessionID,
		CompletedAt:        dto.FormatTime(r.CompletedAt),
	}
	if r.Assessment != nil {
		resp.AssessmentTitle = r.Assessment.Title
	}
	if r.User != nil {
		resp.UserUsername = r.User.Username
	}
	return resp
}

func toResourceResponse(r *model.CareerResource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:              r.ID,
		Title:           r.Title,
		Content:         r.Content,
		ResourceType:    r.ResourceType,
		Category:        r.Category,
		DifficultyLevel: r.DifficultyLevel,
		EstimatedTime:   r.EstimatedTime,
		Tags:            dto.NonNil([]string(r.Tags)),
		IsFeatured:      r.IsFeatured,
		IsActive:        r.IsActive,
		CreatedAt:       dto.FormatTime(r.CreatedAt),
		UpdatedAt:       dto.FormatTime(r.UpdatedAt),
	}
}

func toResourceResponses(list []model.CareerResource) []dto.ResourceResponse {
	out := make([]dto.ResourceResponse, 0, len(list))
	for i := range list {
		out = append(out, toResourceResponse(&list[i]))
	}
	return out
}

func toProfileResponse(p *model.UserProfile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		ID:                       p.ID,
		CareerGoals:              dto.NonNil([]string(p.CareerGoals)),
		Interests:                dto.NonNil([]string(p.Interests)),
		Skills:                   dto.NonNil([]string(p.Skills)),
		ExperienceLevel:          p.ExperienceLevel,
		PreferredWorkEnvironment: p.PreferredWorkEnvironment,
		Version:                  p.Version,
		CreatedAt:                dto.FormatTime(p.CreatedAt),
		UpdatedAt:                dto.FormatTime(p.UpdatedAt),
	}
	if p.User != nil {
		resp.User = toUserResponse(p.User)
	} else {
		resp.User = dto.UserResponse{ID: p.UserID}
	}
	if p.CurrentCareerPath != nil {
		cp := toCareerPathResponse(p.CurrentCareerPath)
		resp.CurrentCareerPath = &cp
	}
	return resp
}
