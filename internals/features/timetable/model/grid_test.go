package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable_backend/internals/features/timetable/calendar"
)

func intPtr(v int) *int { return &v }

func sampleGrid(cal *calendar.Calendar) Grid {
	g := NewGrid(cal)
	lab := &Assignment{Subject: "Organic Chemistry", Teacher: "Prof. Chen", Department: "Chemistry", Semester: "3rd", IsLab: true, Capacity: intPtr(20)}
	g["Monday"][2] = lab.Clone()
	g["Monday"][3] = lab.Clone()
	g["Monday"][4] = lab.Clone()
	g["Friday"][7] = &Assignment{Subject: "Linear Algebra", Teacher: "Prof. Thorne", Department: "Mathematics", Semester: "1st"}
	return g
}

func TestGridRoundTrip(t *testing.T) {
	cal := calendar.Default()
	g := sampleGrid(cal)

	raw, err := EncodeGrid(g)
	require.NoError(t, err)

	back, err := DecodeGrid(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(g, back); diff != "" {
		t.Fatalf("grid changed after round trip (-want +got):\n%s", diff)
	}
	require.NoError(t, CheckShape(back, cal))
}

func TestEmptyGridRoundTrip(t *testing.T) {
	cal := calendar.Default()
	g := NewGrid(cal)

	raw, err := EncodeGrid(g)
	require.NoError(t, err)
	back, err := DecodeGrid(raw)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(g, back))
	for _, day := range cal.Days() {
		assert.Len(t, back[day], 8)
		for _, a := range back[day] {
			assert.Nil(t, a)
		}
	}
}

func TestCheckShape(t *testing.T) {
	cal := calendar.Default()

	g := NewGrid(cal)
	require.NoError(t, CheckShape(g, cal))

	delete(g, "Wednesday")
	assert.ErrorContains(t, CheckShape(g, cal), "Wednesday")

	g = NewGrid(cal)
	g["Tuesday"] = g["Tuesday"][:7]
	assert.ErrorContains(t, CheckShape(g, cal), "Tuesday")

	g = NewGrid(cal)
	g["Saturday"] = make(DaySchedule, 8)
	assert.ErrorContains(t, CheckShape(g, cal), "Saturday")
}

func TestCloneIsDeep(t *testing.T) {
	g := sampleGrid(calendar.Default())
	cp := g.Clone()

	cp["Monday"][2].Subject = "changed"
	*cp["Monday"][3].Capacity = 99
	cp["Friday"][7] = nil

	assert.Equal(t, "Organic Chemistry", g["Monday"][2].Subject)
	assert.Equal(t, 20, *g["Monday"][3].Capacity)
	assert.NotNil(t, g["Friday"][7])
}

func TestSnapshotIndependentOfSubject(t *testing.T) {
	s := Subject{Name: "Quantum Physics", Teacher: "Dr. Reed", Department: "Physics", Semester: "3rd", IsLab: true, PeriodsPerWeek: 3, Capacity: intPtr(25)}
	a := SnapshotOf(s)

	s.Name = "Renamed"
	*s.Capacity = 1

	assert.Equal(t, "Quantum Physics", a.Subject)
	assert.Equal(t, 25, *a.Capacity)
}

func TestSameLabBlock(t *testing.T) {
	a := &Assignment{Subject: "Lab", Teacher: "T", Semester: "1", Department: "D", IsLab: true}
	b := a.Clone()
	b.Department = "other" // department bukan bagian identitas blok
	assert.True(t, SameLabBlock(a, b))

	c := a.Clone()
	c.Teacher = "U"
	assert.False(t, SameLabBlock(a, c))

	nonLab := a.Clone()
	nonLab.IsLab = false
	assert.False(t, SameLabBlock(a, nonLab))
	assert.False(t, SameLabBlock(a, nil))
}

func TestSubjectKeyAndSpan(t *testing.T) {
	a := Subject{Name: "  Linear   Algebra ", Teacher: "Prof. Thorne", Department: "Mathematics", Semester: "1st"}
	b := Subject{Name: "linear algebra", Teacher: "PROF. THORNE", Department: "mathematics", Semester: "1ST"}
	assert.Equal(t, a.Key(), b.Key())

	c := b
	c.Semester = "2nd"
	assert.NotEqual(t, a.Key(), c.Key())

	assert.Equal(t, 1, Subject{PeriodsPerWeek: 4}.Span())
	assert.Equal(t, 3, Subject{IsLab: true, PeriodsPerWeek: 3}.Span())
}

func TestSubjectModelMapping(t *testing.T) {
	s := Subject{Name: "Intro to Chemistry", Teacher: "Prof. Chen", Department: "Chemistry", Semester: "1st", PeriodsPerWeek: 4, Capacity: intPtr(60)}
	m := SubjectModelFrom("default", 3, s)

	assert.Equal(t, "default", m.TimetableSubjectWorkspace)
	assert.Equal(t, 3, m.TimetableSubjectOrder)
	assert.Equal(t, s, m.ToSubject())
}
