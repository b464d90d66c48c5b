package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/model"
)

var (
	subjA = model.Subject{Name: "Linear Algebra", Teacher: "Prof. Thorne", Department: "Mathematics", Semester: "1st", PeriodsPerWeek: 4}
	subjB = model.Subject{Name: "Organic Chemistry", Teacher: "Prof. Chen", Department: "Chemistry", Semester: "3rd", IsLab: true, PeriodsPerWeek: 3}
)

func newEditor(t *testing.T) (*Store, *Editor) {
	t.Helper()
	st := NewStore(calendar.Default())
	return st, NewEditor(st)
}

func TestStoreGetAndBounds(t *testing.T) {
	st, _ := newEditor(t)

	a, err := st.Get("Monday", 0)
	require.NoError(t, err)
	assert.Nil(t, a)

	_, err = st.Get("Sunday", 0)
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = st.Get("Monday", 8)
	assert.ErrorIs(t, err, errs.ErrRange)

	_, err = st.Get("Monday", -1)
	assert.ErrorIs(t, err, errs.ErrRange)

	assert.True(t, st.IsEmpty())
}

func TestStoreReplace(t *testing.T) {
	st, _ := newEditor(t)
	cal := st.Calendar()

	g := Fallback([]model.Subject{subjA}, cal)
	require.NoError(t, st.Replace(g))

	// perubahan di grid milik caller tidak bocor ke store
	g["Monday"][0] = nil
	a, err := st.Get("Monday", 0)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "Linear Algebra", a.Subject)

	bad := model.NewGrid(cal)
	delete(bad, "Friday")
	assert.ErrorIs(t, st.Replace(bad), errs.ErrValidation)

	// replace yang gagal tidak mengubah isi
	a, _ = st.Get("Friday", 7)
	assert.NotNil(t, a)
}

func TestInsertNonLabTouchesOneSlot(t *testing.T) {
	st, ed := newEditor(t)
	before := st.Snapshot()

	written, err := ed.InsertPeriod("Wednesday", 5, subjA)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, written)

	got, err := st.Get("Wednesday", 5)
	require.NoError(t, err)
	assert.Equal(t, model.SnapshotOf(subjA), got)

	after := st.Snapshot()
	after["Wednesday"][5] = nil
	assert.Empty(t, cmp.Diff(before, after))
}

func TestInsertLabWritesContiguousBlock(t *testing.T) {
	st, ed := newEditor(t)

	written, err := ed.InsertPeriod("Monday", 2, subjB)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, written)

	day, err := st.Day("Monday")
	require.NoError(t, err)
	for i := 2; i <= 4; i++ {
		assert.Equal(t, model.SnapshotOf(subjB), day[i], "period %d", i)
	}
	assert.Nil(t, day[1])
	assert.Nil(t, day[5])

	// snapshot per slot independen
	assert.NotSame(t, day[2], day[3])
}

func TestRemoveAnywhereInLabClearsWholeBlock(t *testing.T) {
	for _, click := range []int{2, 3, 4} {
		st, ed := newEditor(t)
		_, err := ed.InsertPeriod("Monday", 2, subjB)
		require.NoError(t, err)
		_, err = ed.InsertPeriod("Monday", 0, subjA)
		require.NoError(t, err)

		cleared, err := ed.RemovePeriod("Monday", click)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 4}, cleared, "click %d", click)

		day, _ := st.Day("Monday")
		for i := 2; i <= 4; i++ {
			assert.Nil(t, day[i])
		}
		assert.NotNil(t, day[0], "non-lab neighbour survives")
	}
}

func TestInsertRangeErrors(t *testing.T) {
	cases := []struct {
		name  string
		index int
		subj  model.Subject
	}{
		{"past end of day", 6, subjB},
		{"crosses lunch", 3, subjB},
		{"crosses first break", 1, model.Subject{Name: "Physics Lab", Teacher: "Dr. Reed", Department: "Physics", Semester: "3rd", IsLab: true, PeriodsPerWeek: 2}},
		{"crosses last break", 6, model.Subject{Name: "Physics Lab", Teacher: "Dr. Reed", Department: "Physics", Semester: "3rd", IsLab: true, PeriodsPerWeek: 2}},
		{"longer than day", 0, model.Subject{Name: "Marathon", Teacher: "X", Department: "Y", Semester: "Z", IsLab: true, PeriodsPerWeek: 9}},
		{"single index out of range", 8, subjA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ed := newEditor(t)
			_, err := ed.InsertPeriod("Tuesday", tc.index, tc.subj)
			assert.ErrorIs(t, err, errs.ErrRange)
			assert.Equal(t, errs.KindRange, errs.KindOf(err))
			assert.True(t, st.IsEmpty(), "failed insert must not write")
		})
	}
}

func TestInsertValidLabPlacements(t *testing.T) {
	// 3-period lab: P3-P5 (idx 2..4) sebelum lunch; 2-period: P6-P7 (idx 5..6)
	_, ed := newEditor(t)
	_, err := ed.InsertPeriod("Thursday", 2, subjB)
	assert.NoError(t, err)

	twoLab := model.Subject{Name: "Physics Lab", Teacher: "Dr. Reed", Department: "Physics", Semester: "3rd", IsLab: true, PeriodsPerWeek: 2}
	_, err = ed.InsertPeriod("Thursday", 5, twoLab)
	assert.NoError(t, err)
	_, err = ed.InsertPeriod("Thursday", 0, twoLab)
	assert.NoError(t, err)
}

func TestInsertOverwritesExistingContent(t *testing.T) {
	st, ed := newEditor(t)
	_, err := ed.InsertPeriod("Friday", 3, subjA)
	require.NoError(t, err)

	_, err = ed.InsertPeriod("Friday", 2, subjB)
	require.NoError(t, err)

	a, _ := st.Get("Friday", 3)
	assert.True(t, a.IsLab)
	assert.Equal(t, "Organic Chemistry", a.Subject)
}

func TestRemoveEdgeCases(t *testing.T) {
	st, ed := newEditor(t)

	cleared, err := ed.RemovePeriod("Monday", 0)
	require.NoError(t, err)
	assert.Empty(t, cleared)
	assert.True(t, st.IsEmpty())

	_, err = ed.InsertPeriod("Monday", 5, subjA)
	require.NoError(t, err)
	_, err = ed.InsertPeriod("Monday", 6, subjA)
	require.NoError(t, err)

	// non-lab: hanya slot itu
	cleared, err = ed.RemovePeriod("Monday", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, cleared)
	a, _ := st.Get("Monday", 6)
	assert.NotNil(t, a)

	_, err = ed.RemovePeriod("Caturday", 0)
	assert.ErrorIs(t, err, errs.ErrValidation)
	_, err = ed.RemovePeriod("Monday", 99)
	assert.ErrorIs(t, err, errs.ErrRange)
}

func TestRemoveStopsAtDifferentLab(t *testing.T) {
	st, ed := newEditor(t)
	other := subjB
	other.Teacher = "Dr. Someone Else"

	_, err := ed.InsertPeriod("Monday", 2, model.Subject{Name: "Mini Lab", Teacher: "T", Department: "D", Semester: "S", IsLab: true, PeriodsPerWeek: 1})
	require.NoError(t, err)
	twoLab := other
	twoLab.PeriodsPerWeek = 2
	_, err = ed.InsertPeriod("Monday", 3, twoLab)
	require.NoError(t, err)

	cleared, err := ed.RemovePeriod("Monday", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, cleared)

	a, _ := st.Get("Monday", 2)
	assert.NotNil(t, a)
}

func TestRemoveDoesNotJoinAcrossLunch(t *testing.T) {
	st, _ := newEditor(t)
	cal := st.Calendar()
	g := model.NewGrid(cal)
	lab := model.SnapshotOf(subjB)
	// idx 4 (P5) dan idx 5 (P6) identik tapi dipisah lunch
	g["Monday"][3] = lab.Clone()
	g["Monday"][4] = lab.Clone()
	g["Monday"][5] = lab.Clone()
	g["Monday"][6] = lab.Clone()
	require.NoError(t, st.Replace(g))

	cleared, err := NewEditor(st).RemovePeriod("Monday", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, cleared)

	a, _ := st.Get("Monday", 5)
	assert.NotNil(t, a)

	cleared, err = NewEditor(st).RemovePeriod("Monday", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, cleared)
	assert.True(t, st.IsEmpty())
}

func TestFilteredViewDoesNotMutate(t *testing.T) {
	st, ed := newEditor(t)
	_, _ = ed.InsertPeriod("Monday", 0, subjA)
	_, _ = ed.InsertPeriod("Monday", 2, subjB)

	view := st.FilteredView(Filter{Department: "Chemistry"}.Predicate())
	assert.Nil(t, view["Monday"][0])
	assert.NotNil(t, view["Monday"][2])

	a, _ := st.Get("Monday", 0)
	assert.NotNil(t, a)

	all := st.FilteredView(nil)
	assert.Empty(t, cmp.Diff(st.Snapshot(), all))
}

func TestFilterPredicate(t *testing.T) {
	assert.Nil(t, Filter{}.Predicate())
	assert.Nil(t, Filter{Department: "All", Semester: " all "}.Predicate())

	p := Filter{Department: "Chemistry", Semester: "All"}.Predicate()
	require.NotNil(t, p)
	assert.True(t, p(model.SnapshotOf(subjB)))
	assert.False(t, p(model.SnapshotOf(subjA)))

	p = Filter{Teacher: "Prof. Thorne"}.Predicate()
	assert.True(t, p(model.SnapshotOf(subjA)))
	assert.False(t, p(model.SnapshotOf(subjB)))
}

func TestInsertLabThenRemoveMiddleClearsBlock(t *testing.T) {
	st, ed := newEditor(t)
	require.Equal(t, 8, st.Calendar().ClassPeriodCount())

	_, err := ed.InsertPeriod("Monday", 2, subjB)
	require.NoError(t, err)
	for _, i := range []int{2, 3, 4} {
		a, _ := st.Get("Monday", i)
		assert.Equal(t, model.SnapshotOf(subjB), a)
	}

	_, err = ed.RemovePeriod("Monday", 3)
	require.NoError(t, err)
	assert.True(t, st.IsEmpty())
}
