package palette

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/model"
)

func TestDepartmentsFirstSeenOrder(t *testing.T) {
	cal := calendar.Default()
	g := model.NewGrid(cal)
	g["Tuesday"][0] = &model.Assignment{Department: "Physics"}
	g["Monday"][7] = &model.Assignment{Department: "Chemistry"}
	g["Monday"][1] = &model.Assignment{Department: "Mathematics"}
	g["Friday"][3] = &model.Assignment{Department: "Chemistry"}

	assert.Equal(t, []string{"Mathematics", "Chemistry", "Physics"}, Departments(g, cal))

	m := ForGrid(g, cal)
	assert.Equal(t, "Rose", m["Mathematics"].Name)
	assert.Equal(t, "Pink", m["Chemistry"].Name)
	assert.Equal(t, "Fuchsia", m["Physics"].Name)
}

func TestAssignWrapsAround(t *testing.T) {
	var depts []string
	for i := 0; i < 18; i++ {
		depts = append(depts, fmt.Sprintf("D%02d", i))
	}
	m := Assign(depts)
	assert.Equal(t, m["D00"], m["D16"])
	assert.Equal(t, m["D01"], m["D17"])
	assert.Len(t, Colors(), 16)
}
