package calendar

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable_backend/internals/features/timetable/errs"
)

func TestDefaultCalendar(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, c.Days())
	assert.Len(t, c.Slots(), 11)
	assert.Equal(t, 8, c.ClassPeriodCount())

	// P1,P2 | break | P3,P4,P5 | lunch | P6,P7 | break | P8
	wantPos := []int{0, 1, 3, 4, 5, 7, 8, 10}
	for i, want := range wantPos {
		pos, ok := c.Position(i)
		require.True(t, ok)
		assert.Equal(t, want, pos, "period %d", i)
	}
	_, ok := c.Position(8)
	assert.False(t, ok)
	_, ok = c.Position(-1)
	assert.False(t, ok)
}

func TestAdjacent(t *testing.T) {
	c := Default()
	assert.True(t, c.Adjacent(0))  // P1-P2
	assert.False(t, c.Adjacent(1)) // P2 | break | P3
	assert.True(t, c.Adjacent(2))
	assert.True(t, c.Adjacent(3))
	assert.False(t, c.Adjacent(4)) // P5 | lunch | P6
	assert.True(t, c.Adjacent(5))
	assert.False(t, c.Adjacent(6)) // P7 | break | P8
	assert.False(t, c.Adjacent(7)) // last period
}

func TestNewRejectsBadTemplates(t *testing.T) {
	slot := Slot{Time: TimeRange{"8:00", "9:00"}, Kind: KindClassPeriod, Label: "P1"}

	_, err := New(nil, []Slot{slot})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = New([]string{"Mon", "Mon"}, []Slot{slot})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = New([]string{"Mon"}, []Slot{{Time: TimeRange{"8:00", "9:00"}, Kind: KindBreak, Label: "Break"}})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = New([]string{"Mon"}, []Slot{{Time: TimeRange{"8:00", "9:00"}, Kind: "NAP", Label: "x"}})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCalendarIsImmutable(t *testing.T) {
	c := Default()
	days := c.Days()
	days[0] = "Sunday"
	slots := c.Slots()
	slots[0].Kind = KindLunch

	assert.Equal(t, "Monday", c.Days()[0])
	assert.Equal(t, KindClassPeriod, c.Slots()[0].Kind)
}

func TestCalendarJSON(t *testing.T) {
	raw, err := sonic.Marshal(Default())
	require.NoError(t, err)

	var out struct {
		Days             []string `json:"days"`
		Slots            []Slot   `json:"slots"`
		ClassPeriodCount int      `json:"class_period_count"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &out))
	assert.Equal(t, 8, out.ClassPeriodCount)
	assert.Equal(t, "Lunch", out.Slots[6].Label)
	assert.Equal(t, 6, out.Slots[6].Index)
}
