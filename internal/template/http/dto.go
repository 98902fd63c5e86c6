package http

import (
	"time"

	"github.com/drivelane/driving-school-backend/internal/template"
)

type DayRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type CreateTemplateRequest struct {
	Name string       `json:"name" binding:"required"`
	Days []DayRequest `json:"days" binding:"required"`
}

type UpdateTemplateRequest struct {
	Name *string      `json:"name"`
	Days []DayRequest `json:"days"`
}

type ApplyTemplateRequest struct {
	EffectiveFrom     string `json:"effective_from" binding:"required"`
	OverwriteExisting bool   `json:"overwrite_existing"`
}

type CopyDayRequest struct {
	SourceDayOfWeek int `json:"source_day_of_week"`
}

type TemplateResponse struct {
	ID           string         `json:"id"`
	InstructorID string         `json:"instructor_id"`
	Name         string         `json:"name"`
	Days         []template.Day `json:"days"`
	Applied      bool           `json:"applied"`
	ValidFrom    *time.Time     `json:"valid_from,omitempty"`
	ValidTo      *time.Time     `json:"valid_to,omitempty"`
	AppliedAt    *time.Time     `json:"applied_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func NewTemplateResponse(t *template.Template) TemplateResponse {
	return TemplateResponse{
		ID:           t.ID,
		InstructorID: t.InstructorID,
		Name:         t.Name,
		Days:         t.Days,
		Applied:      t.IsApplied(),
		ValidFrom:    t.ValidFrom,
		ValidTo:      t.ValidTo,
		AppliedAt:    t.AppliedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toDays(reqs []DayRequest) []template.Day {
	if reqs == nil {
		return nil
	}
	days := make([]template.Day, len(reqs))
	for i, d := range reqs {
		days[i] = template.Day{
			DayOfWeek: d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		}
	}
	return days
}
