// file: internals/features/timetable/model/grid.go
package model

import (
	"fmt"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"timetable_backend/internals/features/timetable/calendar"
)

// DaySchedule: satu entri per class-period; nil = slot kosong.
type DaySchedule []*Assignment

// Grid: nama hari -> DaySchedule.
type Grid map[string]DaySchedule

func NewGrid(cal *calendar.Calendar) Grid {
	g := make(Grid, len(cal.Days()))
	for _, d := range cal.Days() {
		g[d] = make(DaySchedule, cal.ClassPeriodCount())
	}
	return g
}

func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for day, sched := range g {
		cp := make(DaySchedule, len(sched))
		for i, a := range sched {
			cp[i] = a.Clone()
		}
		out[day] = cp
	}
	return out
}

// CheckShape memastikan setiap hari di calendar ada dengan panjang tepat
// ClassPeriodCount. Hari di luar calendar ditolak.
func CheckShape(g Grid, cal *calendar.Calendar) error {
	n := cal.ClassPeriodCount()
	for _, day := range cal.Days() {
		sched, ok := g[day]
		if !ok {
			return fmt.Errorf("missing day %q", day)
		}
		if len(sched) != n {
			return fmt.Errorf("day %q has %d entries, want %d", day, len(sched), n)
		}
	}
	for day := range g {
		if !cal.HasDay(day) {
			return fmt.Errorf("unknown day %q", day)
		}
	}
	return nil
}

func EncodeGrid(g Grid) (datatypes.JSON, error) {
	raw, err := sonic.Marshal(g)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func DecodeGrid(raw []byte) (Grid, error) {
	var g Grid
	if err := sonic.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return g, nil
}
