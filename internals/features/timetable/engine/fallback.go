// file: internals/features/timetable/engine/fallback.go
package engine

import (
	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/model"
)

// Fallback mengisi grid secara round-robin saat generator eksternal tidak
// tersedia. Slot ke-n (urutan hari lalu period) mendapat pool[n % len(pool)],
// pool = katalog apa adanya. Semua constraint diabaikan; hasilnya penuh dan
// deterministik, bukan jadwal yang valid.
func Fallback(subjects []model.Subject, cal *calendar.Calendar) model.Grid {
	g := model.NewGrid(cal)
	if len(subjects) == 0 {
		return g
	}
	n := 0
	for _, day := range cal.Days() {
		sched := g[day]
		for i := range sched {
			sched[i] = model.SnapshotOf(subjects[n%len(subjects)])
			n++
		}
	}
	return g
}
