// file: internals/features/timetable/engine/render.go
package engine

import (
	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/model"
)

type CellKind string

const (
	CellBreak    CellKind = "break"
	CellLunch    CellKind = "lunch"
	CellEmpty    CellKind = "empty"
	CellOccupied CellKind = "occupied"
)

// Cell adalah satu kolom tampilan. Span = jumlah class-period yang ditutup
// (selalu 1 untuk break/lunch/empty dan non-lab).
type Cell struct {
	Kind        CellKind           `json:"kind"`
	Label       string             `json:"label"`
	SlotIndex   int                `json:"slot_index"`
	PeriodIndex int                `json:"period_index"`
	Span        int                `json:"span"`
	Time        calendar.TimeRange `json:"time"`
	Assignment  *model.Assignment  `json:"assignment,omitempty"`
}

type DayRow struct {
	Day   string `json:"day"`
	Cells []Cell `json:"cells"`
}

// RenderDay menggabungkan sel lab identik yang berurutan menjadi satu sel.
// Predicate dievaluasi sebelum merge: sel yang tersaring dianggap kosong,
// jadi blok lab yang sebagian tersaring tidak pernah ter-merge melewatinya.
// Fungsi murni; grid tidak dimutasi.
func RenderDay(sched model.DaySchedule, cal *calendar.Calendar, pred Predicate) []Cell {
	slots := cal.Slots()
	cells := make([]Cell, 0, len(slots))

	at := func(p int) *model.Assignment {
		if p < 0 || p >= len(sched) {
			return nil
		}
		if a := sched[p]; visible(a, pred) {
			return a
		}
		return nil
	}

	period := 0
	for i := 0; i < len(slots); i++ {
		slot := slots[i]
		switch slot.Kind {
		case calendar.KindBreak, calendar.KindLunch:
			kind := CellBreak
			if slot.Kind == calendar.KindLunch {
				kind = CellLunch
			}
			cells = append(cells, Cell{
				Kind: kind, Label: slot.Label, SlotIndex: i, PeriodIndex: -1, Span: 1, Time: slot.Time,
			})
			continue
		}

		a := at(period)
		if a == nil {
			cells = append(cells, Cell{
				Kind: CellEmpty, Label: slot.Label, SlotIndex: i, PeriodIndex: period, Span: 1, Time: slot.Time,
			})
			period++
			continue
		}

		end := period
		if a.IsLab {
			for cal.Adjacent(end) && model.SameLabBlock(at(end+1), a) {
				end++
			}
		}
		span := end - period + 1
		lastSlot, _ := cal.PeriodSlot(end)
		cells = append(cells, Cell{
			Kind:        CellOccupied,
			Label:       slot.Label,
			SlotIndex:   i,
			PeriodIndex: period,
			Span:        span,
			Time:        calendar.TimeRange{Start: slot.Time.Start, End: lastSlot.Time.End},
			Assignment:  a.Clone(),
		})
		i += span - 1
		period = end + 1
	}
	return cells
}

// RenderGrid merender semua hari sesuai urutan calendar.
func RenderGrid(g model.Grid, cal *calendar.Calendar, pred Predicate) []DayRow {
	days := cal.Days()
	rows := make([]DayRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, DayRow{Day: d, Cells: RenderDay(g[d], cal, pred)})
	}
	return rows
}
