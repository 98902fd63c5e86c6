package location

import (
	"net/http"
	"time"

	"github.com/drivelane/driving-school-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "branch not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "branch name is required")
)

// Location is a driving-school branch. Bookings and working hours are
// local wall-clock to the branch.
type Location struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Active    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing branches.
type Filter struct {
	Keyword  string // search in name or address
	Active   *bool
	Page     int
	PageSize int
}
