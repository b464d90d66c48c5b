// file: internals/features/timetable/palette/palette.go
package palette

import (
	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/model"
)

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

var colors = []Color{
	{"Rose", "#f43f5e"}, {"Pink", "#ec4899"}, {"Fuchsia", "#d946ef"}, {"Purple", "#a855f7"},
	{"Violet", "#8b5cf6"}, {"Indigo", "#6366f1"}, {"Blue", "#3b82f6"}, {"Sky", "#0ea5e9"},
	{"Cyan", "#06b6d4"}, {"Teal", "#14b8a6"}, {"Emerald", "#10b981"}, {"Green", "#22c55e"},
	{"Lime", "#84cc16"}, {"Yellow", "#eab308"}, {"Amber", "#f59e0b"}, {"Orange", "#f97316"},
}

// Fallback untuk departemen yang tidak ada di map.
var Neutral = Color{"Slate", "#64748b"}

func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

// Departments: departemen unik di grid, urutan pertama kali muncul
// (hari sesuai calendar, lalu period).
func Departments(g model.Grid, cal *calendar.Calendar) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, day := range cal.Days() {
		for _, a := range g[day] {
			if a == nil || a.Department == "" {
				continue
			}
			if _, ok := seen[a.Department]; ok {
				continue
			}
			seen[a.Department] = struct{}{}
			out = append(out, a.Department)
		}
	}
	return out
}

// Assign dihitung ulang setiap kali dibutuhkan; tidak disimpan sebagai state.
func Assign(departments []string) map[string]Color {
	m := make(map[string]Color, len(departments))
	for i, d := range departments {
		m[d] = colors[i%len(colors)]
	}
	return m
}

func ForGrid(g model.Grid, cal *calendar.Calendar) map[string]Color {
	return Assign(Departments(g, cal))
}
