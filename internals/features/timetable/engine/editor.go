// file: internals/features/timetable/engine/editor.go
package engine

import (
	"fmt"

	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/model"
)

// Editor adalah satu-satunya jalur mutasi grid setelah dimuat/digenerate.
// Ia hanya menjamin kontiguitas blok lab; konflik guru/semester tidak dicek.
type Editor struct {
	store *Store
}

func NewEditor(store *Store) *Editor { return &Editor{store: store} }

// InsertPeriod menulis span snapshot identik mulai periodIndex, menimpa isi
// lama. Span lab tidak boleh melewati akhir hari atau menyeberangi Break/Lunch.
func (e *Editor) InsertPeriod(day string, periodIndex int, subject model.Subject) ([]int, error) {
	if err := e.store.checkCell(day, periodIndex); err != nil {
		return nil, err
	}
	cal := e.store.cal
	span := subject.Span()
	last := periodIndex + span - 1

	if last >= cal.ClassPeriodCount() {
		return nil, fmt.Errorf("%w: %d-period block at %d runs past the last period (%d)",
			errs.ErrRange, span, periodIndex, cal.ClassPeriodCount()-1)
	}
	for i := periodIndex; i < last; i++ {
		if !cal.Adjacent(i) {
			slot, _ := cal.PeriodSlot(i)
			return nil, fmt.Errorf("%w: %d-period block at %d crosses a break after %s",
				errs.ErrRange, span, periodIndex, slot.Label)
		}
	}

	written := make([]int, 0, span)
	for i := periodIndex; i <= last; i++ {
		e.store.set(day, i, model.SnapshotOf(subject))
		written = append(written, i)
	}
	return written, nil
}

// RemovePeriod mengosongkan slot. Untuk lab, seluruh run maksimal yang
// identik ikut dihapus, dari slot mana pun yang diklik. Slot kosong = no-op.
func (e *Editor) RemovePeriod(day string, periodIndex int) ([]int, error) {
	if err := e.store.checkCell(day, periodIndex); err != nil {
		return nil, err
	}
	sched := e.store.grid[day]
	target := sched[periodIndex]
	if target == nil {
		return nil, nil
	}
	if !target.IsLab {
		e.store.set(day, periodIndex, nil)
		return []int{periodIndex}, nil
	}

	start, end := LabRun(e.store.cal.Adjacent, sched, periodIndex)
	cleared := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		e.store.set(day, i, nil)
		cleared = append(cleared, i)
	}
	return cleared, nil
}

// LabRun mencari run maksimal [start,end] di sekitar idx yang berisi blok lab
// identik. Run berhenti di celah template (Break/Lunch): lab identik di kedua
// sisi celah (mis. dari Fallback) dihapus sebagai dua blok terpisah.
func LabRun(adjacent func(int) bool, sched model.DaySchedule, idx int) (int, int) {
	target := sched[idx]
	start, end := idx, idx
	for start > 0 && adjacent(start-1) && model.SameLabBlock(sched[start-1], target) {
		start--
	}
	for end+1 < len(sched) && adjacent(end) && model.SameLabBlock(sched[end+1], target) {
		end++
	}
	return start, end
}
