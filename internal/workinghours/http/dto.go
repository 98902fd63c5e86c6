package http

import (
	"github.com/drivelane/driving-school-backend/internal/workinghours"
)

type CreateEntryRequest struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable *bool  `json:"is_available"`
}

type UpdateEntryRequest struct {
	DayOfWeek   *int    `json:"day_of_week"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	IsAvailable *bool   `json:"is_available"`
}

type EntryResponse struct {
	ID           string `json:"id"`
	InstructorID string `json:"instructor_id"`
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsAvailable  bool   `json:"is_available"`
}

func NewEntryResponse(e *workinghours.Entry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		InstructorID: e.InstructorID,
		DayOfWeek:    e.DayOfWeek,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		IsAvailable:  e.IsAvailable,
	}
}
