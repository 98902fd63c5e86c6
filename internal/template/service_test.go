package template

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drivelane/driving-school-backend/internal/db"
	"github.com/drivelane/driving-school-backend/internal/workinghours"
)

// fakeWorkingHours implements workinghours.Repository with canned answers
// for the existence check; the rest is unused here.
type fakeWorkingHours struct {
	hasRows bool
	err     error
}

func (f *fakeWorkingHours) Create(ctx context.Context, e *workinghours.Entry) error { return nil }

func (f *fakeWorkingHours) GetByID(ctx context.Context, id string) (*workinghours.Entry, error) {
	return nil, workinghours.ErrNotFound
}

func (f *fakeWorkingHours) ListByInstructor(ctx context.Context, instructorID string) ([]*workinghours.Entry, error) {
	return nil, nil
}

func (f *fakeWorkingHours) Update(ctx context.Context, e *workinghours.Entry) error { return nil }

func (f *fakeWorkingHours) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeWorkingHours) HasAnyForInstructor(ctx context.Context, instructorID string) (bool, error) {
	return f.hasRows, f.err
}

func (f *fakeWorkingHours) ReplaceForInstructor(ctx context.Context, instructorID string, entries []*workinghours.Entry) error {
	return nil
}

func (f *fakeWorkingHours) WithTx(q db.Querier) workinghours.Repository { return f }

func TestCheckApplyConflict(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		repo      *fakeWorkingHours
		overwrite bool
		wantErr   error
	}{
		{
			name: "empty schedule applies",
			repo: &fakeWorkingHours{},
		},
		{
			name:    "existing rows without overwrite conflict",
			repo:    &fakeWorkingHours{hasRows: true},
			wantErr: ErrApplyConflict,
		},
		{
			name:      "existing rows with overwrite apply",
			repo:      &fakeWorkingHours{hasRows: true},
			overwrite: true,
		},
		{
			name:      "overwrite skips the existence check entirely",
			repo:      &fakeWorkingHours{err: errors.New("unreachable")},
			overwrite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkApplyConflict(ctx, tt.repo, "inst-1", tt.overwrite)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("check error propagates", func(t *testing.T) {
		dbErr := errors.New("db down")
		err := checkApplyConflict(ctx, &fakeWorkingHours{err: dbErr}, "inst-1", false)
		assert.ErrorIs(t, err, dbErr)
	})
}
