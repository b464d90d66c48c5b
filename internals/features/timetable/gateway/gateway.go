// file: internals/features/timetable/gateway/gateway.go
package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/model"
)

// Generator menghasilkan grid lengkap dari katalog. Gagal sebelum ada payload
// harus dibungkus errs.ErrServiceUnavailable; payload rusak dengan
// errs.ErrMalformedResponse.
type Generator interface {
	Generate(ctx context.Context, subjects []model.Subject) (model.Grid, error)
}

// GeneratorFunc adapter untuk fungsi biasa.
type GeneratorFunc func(ctx context.Context, subjects []model.Subject) (model.Grid, error)

func (f GeneratorFunc) Generate(ctx context.Context, subjects []model.Subject) (model.Grid, error) {
	return f(ctx, subjects)
}

// DecodeGrid mem-parse payload JSON generator dan memvalidasinya terhadap
// calendar. Entri dengan subject kosong dianggap slot kosong; hari di luar
// calendar diabaikan. Capacity < 1 dibuang. Blok lab yang melewati
// Break/Lunch ditolak sebagai MalformedResponse.
func DecodeGrid(payload string, cal *calendar.Calendar) (model.Grid, error) {
	body := stripFences(payload)
	if body == "" {
		return nil, fmt.Errorf("%w: empty payload", errs.ErrMalformedResponse)
	}

	var raw map[string][]*model.Assignment
	if err := sonic.UnmarshalString(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedResponse, err)
	}

	g := make(model.Grid, len(cal.Days()))
	for _, day := range cal.Days() {
		sched, ok := raw[day]
		if !ok || sched == nil {
			return nil, fmt.Errorf("%w: missing day %q", errs.ErrMalformedResponse, day)
		}
		for i, a := range sched {
			if a == nil {
				continue
			}
			a.Subject = strings.TrimSpace(a.Subject)
			a.Teacher = strings.TrimSpace(a.Teacher)
			a.Department = strings.TrimSpace(a.Department)
			a.Semester = strings.TrimSpace(a.Semester)
			if a.Subject == "" {
				sched[i] = nil
				continue
			}
			if a.Capacity != nil && *a.Capacity < 1 {
				a.Capacity = nil
			}
		}
		g[day] = sched
	}
	if err := model.CheckShape(g, cal); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedResponse, err)
	}
	for _, day := range cal.Days() {
		if i, ok := splitLab(g[day], cal); ok {
			return nil, fmt.Errorf("%w: %s lab %q crosses a break at period %d",
				errs.ErrMalformedResponse, day, g[day][i].Subject, i+1)
		}
	}
	return g, nil
}

// splitLab mencari pasangan lab identik di kedua sisi celah template.
func splitLab(sched model.DaySchedule, cal *calendar.Calendar) (int, bool) {
	for i := 0; i+1 < len(sched); i++ {
		if sched[i] == nil || !sched[i].IsLab || cal.Adjacent(i) {
			continue
		}
		if model.SameLabBlock(sched[i], sched[i+1]) {
			return i, true
		}
	}
	return 0, false
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
