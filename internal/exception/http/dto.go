package http

import (
	"time"

	"github.com/drivelane/driving-school-backend/internal/exception"
)

type CreateExceptionRequest struct {
	Type      string  `json:"type" binding:"required"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	AllDay    bool    `json:"all_day"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Reason    string  `json:"reason"`
}

type ExceptionResponse struct {
	ID           string    `json:"id"`
	InstructorID string    `json:"instructor_id"`
	Type         string    `json:"type"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	AllDay       bool      `json:"all_day"`
	StartTime    *string   `json:"start_time,omitempty"`
	EndTime      *string   `json:"end_time,omitempty"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewExceptionResponse(e *exception.Exception) ExceptionResponse {
	return ExceptionResponse{
		ID:           e.ID,
		InstructorID: e.InstructorID,
		Type:         string(e.Type),
		StartDate:    e.StartDate.Format("2006-01-02"),
		EndDate:      e.EndDate.Format("2006-01-02"),
		AllDay:       e.AllDay,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Reason:       e.Reason,
		CreatedAt:    e.CreatedAt,
	}
}

type ListExceptionsResponse struct {
	Current []ExceptionResponse `json:"current"`
	Past    []ExceptionResponse `json:"past"`
}
