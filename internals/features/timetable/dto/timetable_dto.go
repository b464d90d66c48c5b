// file: internals/features/timetable/dto/timetable_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	"timetable_backend/internals/features/timetable/engine"
	"timetable_backend/internals/features/timetable/model"
)

// =======================
// Request DTO
// =======================

type SubjectCreateRequest struct {
	Name           string `json:"name"             validate:"required,max=160"`
	Teacher        string `json:"teacher"          validate:"required,max=160"`
	Department     string `json:"department"       validate:"required,max=120"`
	Semester       string `json:"semester"         validate:"required,max=120"`
	IsLab          bool   `json:"is_lab"`
	PeriodsPerWeek int    `json:"periods_per_week" validate:"required,min=1,max=64"`
	Capacity       *int   `json:"capacity,omitempty" validate:"omitempty,min=1"`
}

// pointer: bedakan "tidak dikirim" vs nilai kosong
type SubjectUpdateRequest struct {
	Name           *string `json:"name,omitempty"             validate:"omitempty,min=1,max=160"`
	Teacher        *string `json:"teacher,omitempty"          validate:"omitempty,min=1,max=160"`
	Department     *string `json:"department,omitempty"       validate:"omitempty,min=1,max=120"`
	Semester       *string `json:"semester,omitempty"         validate:"omitempty,min=1,max=120"`
	IsLab          *bool   `json:"is_lab,omitempty"`
	PeriodsPerWeek *int    `json:"periods_per_week,omitempty" validate:"omitempty,min=1,max=64"`
	Capacity       *int    `json:"capacity,omitempty"         validate:"omitempty,min=1"`
	ClearCapacity  bool    `json:"clear_capacity,omitempty"`
}

type InsertPeriodRequest struct {
	Day         string    `json:"day"          validate:"required"`
	PeriodIndex *int      `json:"period_index" validate:"required"`
	SubjectID   uuid.UUID `json:"subject_id"   validate:"required"`
}

type ImportRequest struct {
	Text string `json:"text" validate:"required"`
}

// GridQuery: filter tampilan grid (?department=&semester=&teacher=)
type GridQuery struct {
	Department string `query:"department"`
	Semester   string `query:"semester"`
	Teacher    string `query:"teacher"`
}

type SubjectQuery struct {
	Q       string `query:"q"`
	Grouped bool   `query:"grouped"`
}

// =======================
// Helpers
// =======================

func (r *SubjectCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Teacher = strings.TrimSpace(r.Teacher)
	r.Department = strings.TrimSpace(r.Department)
	r.Semester = strings.TrimSpace(r.Semester)
}

func (r SubjectCreateRequest) ToSubject() model.Subject {
	return model.Subject{
		Name:           r.Name,
		Teacher:        r.Teacher,
		Department:     r.Department,
		Semester:       r.Semester,
		IsLab:          r.IsLab,
		PeriodsPerWeek: r.PeriodsPerWeek,
		Capacity:       r.Capacity,
	}
}

// Apply menimpa field yang dikirim saja ke salinan subject lama.
func (r SubjectUpdateRequest) Apply(s model.Subject) model.Subject {
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.Teacher != nil {
		s.Teacher = strings.TrimSpace(*r.Teacher)
	}
	if r.Department != nil {
		s.Department = strings.TrimSpace(*r.Department)
	}
	if r.Semester != nil {
		s.Semester = strings.TrimSpace(*r.Semester)
	}
	if r.IsLab != nil {
		s.IsLab = *r.IsLab
	}
	if r.PeriodsPerWeek != nil {
		s.PeriodsPerWeek = *r.PeriodsPerWeek
	}
	switch {
	case r.ClearCapacity:
		s.Capacity = nil
	case r.Capacity != nil:
		v := *r.Capacity
		s.Capacity = &v
	}
	return s
}

func (q GridQuery) Filter() engine.Filter {
	return engine.Filter{Department: q.Department, Semester: q.Semester, Teacher: q.Teacher}
}

// =======================
// Response DTO
// =======================

type SubjectResponse struct {
	model.Subject
	Span int `json:"span"`
}

func FromSubject(s model.Subject) SubjectResponse {
	return SubjectResponse{Subject: s, Span: s.Span()}
}

func FromSubjects(list []model.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromSubject(s))
	}
	return out
}

type EditResponse struct {
	Day     string `json:"day"`
	Periods []int  `json:"periods"`
}
