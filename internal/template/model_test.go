package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateValidate(t *testing.T) {
	valid := func() *Template {
		return &Template{
			Name: "weekday mornings",
			Days: []Day{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			},
		}
	}

	t.Run("valid draft", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		tpl := valid()
		tpl.Name = ""
		assert.ErrorIs(t, tpl.Validate(), ErrNameRequired)
	})

	t.Run("empty pattern", func(t *testing.T) {
		tpl := valid()
		tpl.Days = nil
		assert.ErrorIs(t, tpl.Validate(), ErrEmptyPattern)
	})

	t.Run("day out of range", func(t *testing.T) {
		tpl := valid()
		tpl.Days[0].DayOfWeek = 7
		assert.ErrorIs(t, tpl.Validate(), ErrInvalidDay)
	})

	t.Run("inverted time range", func(t *testing.T) {
		tpl := valid()
		tpl.Days[0].StartTime, tpl.Days[0].EndTime = "12:00", "09:00"
		assert.ErrorIs(t, tpl.Validate(), ErrInvalidTimeRange)
	})

	t.Run("unparseable time", func(t *testing.T) {
		tpl := valid()
		tpl.Days[0].StartTime = "morning"
		assert.Error(t, tpl.Validate())
	})
}

func TestCopyToAllDays(t *testing.T) {
	tpl := &Template{
		Name: "split shifts",
		Days: []Day{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: 1, StartTime: "14:00", EndTime: "17:00"},
			{DayOfWeek: 3, StartTime: "08:00", EndTime: "10:00"},
		},
	}

	require.NoError(t, CopyToAllDays(tpl, 1))

	require.Len(t, tpl.Days, 14, "two ranges replicated across seven days")
	for dow := 0; dow <= 6; dow++ {
		var ranges []Day
		for _, d := range tpl.Days {
			if d.DayOfWeek == dow {
				ranges = append(ranges, d)
			}
		}
		require.Len(t, ranges, 2, "day %d", dow)
		assert.Equal(t, "09:00", ranges[0].StartTime)
		assert.Equal(t, "14:00", ranges[1].StartTime)
	}
}

func TestCopyToAllDaysErrors(t *testing.T) {
	tpl := &Template{
		Name: "t",
		Days: []Day{{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}},
	}

	assert.ErrorIs(t, CopyToAllDays(tpl, 9), ErrInvalidDay)
	assert.ErrorIs(t, CopyToAllDays(tpl, 2), ErrNoSourceDay)
	assert.Len(t, tpl.Days, 1, "failed copy must not touch the draft")
}

func TestCoversDate(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	applied := from

	tpl := &Template{ValidFrom: &from, ValidTo: &to, AppliedAt: &applied}

	assert.True(t, tpl.CoversDate(from))
	assert.True(t, tpl.CoversDate(to))
	assert.True(t, tpl.CoversDate(from.AddDate(0, 0, 10)))
	assert.False(t, tpl.CoversDate(from.AddDate(0, 0, -1)))
	assert.False(t, tpl.CoversDate(to.AddDate(0, 0, 1)))

	openEnded := &Template{ValidFrom: &from, AppliedAt: &applied}
	assert.True(t, openEnded.CoversDate(to.AddDate(1, 0, 0)))

	draft := &Template{ValidFrom: &from}
	assert.False(t, draft.CoversDate(from), "drafts never cover dates")
}
