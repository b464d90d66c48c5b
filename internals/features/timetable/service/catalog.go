// file: internals/features/timetable/service/catalog.go
package service

import (
	"strings"

	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/model"
	helper "timetable_backend/internals/helpers"
)

/* =========================================================
   Helper katalog: murni, tidak menyentuh state Planner
========================================================= */

type SemesterGroup struct {
	Semester string          `json:"semester"`
	Subjects []model.Subject `json:"subjects"`
}

type DepartmentGroup struct {
	Department string          `json:"department"`
	Semesters  []SemesterGroup `json:"semesters"`
}

type Facets struct {
	Departments []string `json:"departments"`
	Semesters   []string `json:"semesters"`
	Teachers    []string `json:"teachers"`
}

// Search: substring case-insensitive di nama atau pengajar. q kosong = semua.
func Search(subjects []model.Subject, q string) []model.Subject {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]model.Subject, 0, len(subjects))
	for _, s := range subjects {
		if q == "" ||
			strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Teacher), q) {
			out = append(out, s)
		}
	}
	return out
}

// Group: department lalu semester, keduanya dalam urutan pertama kali muncul.
func Group(subjects []model.Subject) []DepartmentGroup {
	var groups []DepartmentGroup
	deptIdx := map[string]int{}
	semIdx := map[string]map[string]int{}

	for _, s := range subjects {
		di, ok := deptIdx[s.Department]
		if !ok {
			di = len(groups)
			deptIdx[s.Department] = di
			semIdx[s.Department] = map[string]int{}
			groups = append(groups, DepartmentGroup{Department: s.Department})
		}
		g := &groups[di]
		si, ok := semIdx[s.Department][s.Semester]
		if !ok {
			si = len(g.Semesters)
			semIdx[s.Department][s.Semester] = si
			g.Semesters = append(g.Semesters, SemesterGroup{Semester: s.Semester})
		}
		g.Semesters[si].Subjects = append(g.Semesters[si].Subjects, s)
	}
	return groups
}

func FacetsOf(subjects []model.Subject) Facets {
	f := Facets{Departments: []string{}, Semesters: []string{}, Teachers: []string{}}
	seen := map[string]bool{}
	add := func(dst *[]string, prefix, v string) {
		if v == "" || seen[prefix+v] {
			return
		}
		seen[prefix+v] = true
		*dst = append(*dst, v)
	}
	for _, s := range subjects {
		add(&f.Departments, "d:", s.Department)
		add(&f.Semesters, "s:", s.Semester)
		add(&f.Teachers, "t:", s.Teacher)
	}
	return f
}

/* =========================================================
   Validasi subject
========================================================= */

var validate = helper.NewValidator()

// validateSubject mengubah error validator menjadi FieldError (ValidationError).
func validateSubject(s model.Subject) error {
	if err := validate.Struct(s); err != nil {
		return &errs.FieldError{Fields: helper.FieldErrors(err)}
	}
	return nil
}

func duplicateError() error {
	return &errs.FieldError{Fields: map[string][]string{
		"name": {"subject with the same name, teacher, department and semester already exists"},
	}}
}
