// file: internals/features/timetable/engine/filter.go
package engine

import (
	"strings"

	"timetable_backend/internals/features/timetable/model"
)

// Predicate dipakai hanya untuk tampilan; nil berarti terima semua.
type Predicate func(a *model.Assignment) bool

// AllValue: nilai filter yang berarti "semua" (sama dengan kosong).
const AllValue = "All"

type Filter struct {
	Department string
	Semester   string
	Teacher    string
}

func unset(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AllValue)
}

func matches(want, got string) bool {
	return unset(want) || strings.TrimSpace(want) == got
}

func (f Filter) IsZero() bool {
	return unset(f.Department) && unset(f.Semester) && unset(f.Teacher)
}

// Predicate mengembalikan nil kalau filter tidak membatasi apa pun.
func (f Filter) Predicate() Predicate {
	if f.IsZero() {
		return nil
	}
	return func(a *model.Assignment) bool {
		return matches(f.Department, a.Department) &&
			matches(f.Semester, a.Semester) &&
			matches(f.Teacher, a.Teacher)
	}
}

func visible(a *model.Assignment, pred Predicate) bool {
	if a == nil {
		return false
	}
	return pred == nil || pred(a)
}
