package booking

import (
	"net/http"
	"time"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotUnavailable = apperror.New(http.StatusConflict, "requested time range is not available")
	ErrSlotConflict    = apperror.New(http.StatusConflict, "another booking took this slot")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
	ErrInvalidLesson   = apperror.New(http.StatusBadRequest, "invalid lesson type")
	ErrFundingRequired = apperror.New(http.StatusBadRequest, "either package_id or payment_ref is required")
	ErrNotCheckInDay   = apperror.New(http.StatusConflict, "check-in is only allowed on the lesson day")
	ErrNotStartedYet   = apperror.New(http.StatusConflict, "lesson has not started yet")
)

// Status of a booking. Confirmed is the only initial state.
type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// LessonType classifies the driving lesson.
type LessonType string

const (
	LessonStandard LessonType = "standard"
	LessonHighway  LessonType = "highway"
	LessonNight    LessonType = "night"
	LessonExamPrep LessonType = "exam_prep"
	LessonExam     LessonType = "exam"
)

// IsValid reports whether t is a known lesson type.
func (t LessonType) IsValid() bool {
	switch t {
	case LessonStandard, LessonHighway, LessonNight, LessonExamPrep, LessonExam:
		return true
	}
	return false
}

// Booking is one scheduled lesson. For a given instructor no two bookings
// in confirmed or in_progress status may overlap; the database enforces
// this with an exclusion constraint.
type Booking struct {
	ID              string
	InstructorID    string
	StudentID       string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	LessonType      LessonType
	Status          Status
	VehicleID       *string
	LocationID      *string
	Notes           string
	IsPaid          bool
	UsedCredits     int
	PackageID       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
