package http

import (
	"time"

	"github.com/drivelane/driving-school-backend/internal/booking"
)

type CreateBookingRequest struct {
	InstructorID    string    `json:"instructor_id" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	LessonType      string    `json:"lesson_type" binding:"required"`
	PackageID       *string   `json:"package_id"`
	PaymentRef      string    `json:"payment_ref"`
	LocationID      *string   `json:"location_id"`
	VehicleID       *string   `json:"vehicle_id"`
	Notes           string    `json:"notes"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	InstructorID    string    `json:"instructor_id"`
	StudentID       string    `json:"student_id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
	LessonType      string    `json:"lesson_type"`
	Status          string    `json:"status"`
	VehicleID       *string   `json:"vehicle_id,omitempty"`
	LocationID      *string   `json:"location_id,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	IsPaid          bool      `json:"is_paid"`
	UsedCredits     int       `json:"used_credits"`
	PackageID       *string   `json:"package_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		InstructorID:    b.InstructorID,
		StudentID:       b.StudentID,
		Start:           b.StartTime,
		End:             b.EndTime,
		DurationMinutes: b.DurationMinutes,
		LessonType:      string(b.LessonType),
		Status:          string(b.Status),
		VehicleID:       b.VehicleID,
		LocationID:      b.LocationID,
		Notes:           b.Notes,
		IsPaid:          b.IsPaid,
		UsedCredits:     b.UsedCredits,
		PackageID:       b.PackageID,
		CreatedAt:       b.CreatedAt,
	}
}

type CancelBookingResponse struct {
	Booking          BookingResponse `json:"booking"`
	CreditsRefunded  int             `json:"credits_refunded"`
	CreditsForfeited bool            `json:"credits_forfeited"`
}
