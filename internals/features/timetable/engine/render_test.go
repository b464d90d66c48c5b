package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/model"
)

func totalSpan(cells []Cell) int {
	n := 0
	for _, c := range cells {
		n += c.Span
	}
	return n
}

func TestRenderMergesLabBlock(t *testing.T) {
	st, ed := newEditor(t)
	cal := st.Calendar()
	_, err := ed.InsertPeriod("Monday", 2, subjB)
	require.NoError(t, err)
	_, err = ed.InsertPeriod("Monday", 0, subjA)
	require.NoError(t, err)

	day, _ := st.Day("Monday")
	cells := RenderDay(day, cal, nil)

	// P1(A) P2(empty) Break [P3-P5 lab] Lunch P6 P7 Break P8
	kinds := make([]CellKind, len(cells))
	for i, c := range cells {
		kinds[i] = c.Kind
	}
	assert.Equal(t, []CellKind{
		CellOccupied, CellEmpty, CellBreak, CellOccupied, CellLunch,
		CellEmpty, CellEmpty, CellBreak, CellEmpty,
	}, kinds)
	assert.Equal(t, len(cal.Slots()), totalSpan(cells))

	lab := cells[3]
	assert.Equal(t, 3, lab.Span)
	assert.Equal(t, 2, lab.PeriodIndex)
	assert.Equal(t, 3, lab.SlotIndex)
	assert.Equal(t, calendar.TimeRange{Start: "10:50 AM", End: "1:05 PM"}, lab.Time)
	assert.Equal(t, "Organic Chemistry", lab.Assignment.Subject)

	assert.Equal(t, 1, cells[0].Span)
	assert.Equal(t, "Lunch", cells[4].Label)
	assert.Equal(t, -1, cells[4].PeriodIndex)
	assert.Equal(t, 10, cells[8].SlotIndex)
	assert.Equal(t, 7, cells[8].PeriodIndex)
}

func TestRenderNonLabNeverMerges(t *testing.T) {
	st, ed := newEditor(t)
	for i := 2; i <= 4; i++ {
		_, err := ed.InsertPeriod("Tuesday", i, subjA)
		require.NoError(t, err)
	}
	day, _ := st.Day("Tuesday")
	cells := RenderDay(day, st.Calendar(), nil)
	for _, c := range cells {
		assert.Equal(t, 1, c.Span)
	}
	assert.Len(t, cells, 11)
}

func TestRenderPredicateAppliedBeforeMerge(t *testing.T) {
	cal := calendar.Default()
	lab := model.SnapshotOf(subjB)
	sched := make(model.DaySchedule, cal.ClassPeriodCount())
	sched[2] = lab.Clone()
	sched[3] = lab.Clone()
	sched[3].Department = "Physics" // masih blok yang sama, departemen beda
	sched[4] = lab.Clone()

	full := RenderDay(sched, cal, nil)
	assert.Equal(t, 3, full[3].Span)

	cells := RenderDay(sched, cal, Filter{Department: "Chemistry"}.Predicate())
	assert.Equal(t, CellOccupied, cells[3].Kind)
	assert.Equal(t, 1, cells[3].Span)
	assert.Equal(t, CellEmpty, cells[4].Kind)
	assert.Equal(t, 1, cells[4].Span)
	assert.Equal(t, CellOccupied, cells[5].Kind)
	assert.Equal(t, 1, cells[5].Span)
	assert.Equal(t, len(cal.Slots()), totalSpan(cells))

	// semua tersaring: tidak ada "merged blank"
	none := RenderDay(sched, cal, func(*model.Assignment) bool { return false })
	for _, c := range none {
		assert.NotEqual(t, CellOccupied, c.Kind)
		assert.Equal(t, 1, c.Span)
	}
}

func TestRenderIdempotentAndAcceptAll(t *testing.T) {
	cal := calendar.Default()
	g := Fallback([]model.Subject{subjA, subjB}, cal)
	st := NewStore(cal)
	require.NoError(t, st.Replace(g))
	ed := NewEditor(st)
	_, err := ed.InsertPeriod("Wednesday", 5, subjB)
	require.NoError(t, err)
	g = st.Snapshot()

	first := RenderGrid(g, cal, nil)
	second := RenderGrid(g, cal, nil)
	assert.Empty(t, cmp.Diff(first, second))

	acceptAll := RenderGrid(g, cal, func(*model.Assignment) bool { return true })
	assert.Empty(t, cmp.Diff(first, acceptAll))

	pred := Filter{Semester: "3rd"}.Predicate()
	filtered := st.FilteredView(pred)
	once := RenderGrid(filtered, cal, pred)
	twice := RenderGrid(filtered, cal, pred)
	assert.Empty(t, cmp.Diff(once, twice))
	assert.Empty(t, cmp.Diff(once, RenderGrid(g, cal, pred)))

	// render tidak memutasi grid
	assert.Empty(t, cmp.Diff(st.Snapshot(), g))
}

func TestRenderGridOrderAndMissingDay(t *testing.T) {
	cal := calendar.Default()
	rows := RenderGrid(model.Grid{}, cal, nil)
	require.Len(t, rows, 5)
	assert.Equal(t, "Monday", rows[0].Day)
	assert.Equal(t, "Friday", rows[4].Day)
	for _, r := range rows {
		assert.Len(t, r.Cells, 11)
	}
}
