// file: internals/features/timetable/model/subject.go
package model

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Subject adalah satu entri katalog. Untuk lab, PeriodsPerWeek = panjang blok
// kontigu; untuk non-lab hanya frekuensi informatif.
type Subject struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"             validate:"required,max=160"`
	Teacher        string    `json:"teacher"          validate:"required,max=160"`
	Department     string    `json:"department"       validate:"required,max=120"`
	Semester       string    `json:"semester"         validate:"required,max=120"`
	IsLab          bool      `json:"is_lab"`
	PeriodsPerWeek int       `json:"periods_per_week" validate:"required,min=1,max=64"`
	Capacity       *int      `json:"capacity,omitempty" validate:"omitempty,min=1"`
}

// Span: jumlah slot yang ditulis sekali insert.
func (s Subject) Span() int {
	if s.IsLab && s.PeriodsPerWeek > 1 {
		return s.PeriodsPerWeek
	}
	return 1
}

// Key dipakai untuk deteksi duplikat (name/teacher/department/semester),
// case-insensitive dan ter-normalisasi NFC.
func (s Subject) Key() string {
	parts := []string{s.Name, s.Teacher, s.Department, s.Semester}
	for i, p := range parts {
		parts[i] = strings.ToLower(norm.NFC.String(strings.Join(strings.Fields(p), " ")))
	}
	return strings.Join(parts, "\x1f")
}

func (s *Subject) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Teacher = strings.TrimSpace(s.Teacher)
	s.Department = strings.TrimSpace(s.Department)
	s.Semester = strings.TrimSpace(s.Semester)
}

func CloneSubjects(in []Subject) []Subject {
	out := make([]Subject, len(in))
	for i, s := range in {
		out[i] = s
		out[i].Capacity = cloneInt(s.Capacity)
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
