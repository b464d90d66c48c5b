// file: internals/features/timetable/engine/store.go
package engine

import (
	"fmt"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/model"
)

// Store memegang satu Grid. Tidak thread-safe; pemiliknya (Planner) yang
// menjaga akses berurutan.
type Store struct {
	cal  *calendar.Calendar
	grid model.Grid
}

func NewStore(cal *calendar.Calendar) *Store {
	return &Store{cal: cal, grid: model.NewGrid(cal)}
}

func (s *Store) Calendar() *calendar.Calendar { return s.cal }

func (s *Store) checkCell(day string, periodIndex int) error {
	if !s.cal.HasDay(day) {
		return fmt.Errorf("%w: unknown day %q", errs.ErrValidation, day)
	}
	if periodIndex < 0 || periodIndex >= s.cal.ClassPeriodCount() {
		return fmt.Errorf("%w: period %d outside 0..%d", errs.ErrRange, periodIndex, s.cal.ClassPeriodCount()-1)
	}
	return nil
}

// Get mengembalikan salinan isi slot; (nil, nil) berarti slot kosong.
func (s *Store) Get(day string, periodIndex int) (*model.Assignment, error) {
	if err := s.checkCell(day, periodIndex); err != nil {
		return nil, err
	}
	return s.grid[day][periodIndex].Clone(), nil
}

// Replace menukar grid secara utuh. Grid lama dibuang, tidak di-merge.
func (s *Store) Replace(g model.Grid) error {
	if err := model.CheckShape(g, s.cal); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	s.grid = g.Clone()
	return nil
}

// Snapshot: salinan dalam dari grid saat ini.
func (s *Store) Snapshot() model.Grid { return s.grid.Clone() }

func (s *Store) Day(day string) (model.DaySchedule, error) {
	if !s.cal.HasDay(day) {
		return nil, fmt.Errorf("%w: unknown day %q", errs.ErrValidation, day)
	}
	return s.Snapshot()[day], nil
}

// FilteredView mengosongkan assignment yang tidak lolos predicate. Grid
// asli tidak disentuh; hasilnya hanya untuk tampilan.
func (s *Store) FilteredView(pred Predicate) model.Grid {
	out := s.Snapshot()
	if pred == nil {
		return out
	}
	for _, sched := range out {
		for i, a := range sched {
			if a != nil && !pred(a) {
				sched[i] = nil
			}
		}
	}
	return out
}

// IsEmpty true kalau tidak ada satu pun slot terisi.
func (s *Store) IsEmpty() bool {
	for _, sched := range s.grid {
		for _, a := range sched {
			if a != nil {
				return false
			}
		}
	}
	return true
}

func (s *Store) set(day string, periodIndex int, a *model.Assignment) {
	s.grid[day][periodIndex] = a
}
