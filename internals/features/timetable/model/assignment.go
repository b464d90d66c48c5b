// file: internals/features/timetable/model/assignment.go
package model

// Assignment adalah snapshot field Subject yang ditulis ke slot. Tidak
// mereferensikan Subject, jadi edit katalog tidak mengubah grid yang sudah ada.
type Assignment struct {
	Subject    string `json:"subject"`
	Teacher    string `json:"teacher"`
	Department string `json:"department"`
	Semester   string `json:"semester"`
	IsLab      bool   `json:"is_lab"`
	Capacity   *int   `json:"capacity,omitempty"`
}

func SnapshotOf(s Subject) *Assignment {
	return &Assignment{
		Subject:    s.Name,
		Teacher:    s.Teacher,
		Department: s.Department,
		Semester:   s.Semester,
		IsLab:      s.IsLab,
		Capacity:   cloneInt(s.Capacity),
	}
}

func (a *Assignment) Clone() *Assignment {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Capacity = cloneInt(a.Capacity)
	return &cp
}

// SameLabBlock: dua sel termasuk blok lab yang sama jika keduanya lab dengan
// subject, teacher, dan semester identik.
func SameLabBlock(a, b *Assignment) bool {
	if a == nil || b == nil || !a.IsLab || !b.IsLab {
		return false
	}
	return a.Subject == b.Subject && a.Teacher == b.Teacher && a.Semester == b.Semester
}
