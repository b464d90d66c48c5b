// file: internals/features/timetable/model/models.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubjectModel struct {
	// ============ PK & workspace ============
	TimetableSubjectID        uuid.UUID `gorm:"column:timetable_subject_id;type:uuid;primaryKey"                      json:"timetable_subject_id"`
	TimetableSubjectWorkspace string    `gorm:"column:timetable_subject_workspace;type:varchar(80);not null;index"     json:"timetable_subject_workspace"`
	TimetableSubjectOrder     int       `gorm:"column:timetable_subject_order;not null;default:0"                      json:"timetable_subject_order"`

	// ============ Identitas ============
	TimetableSubjectName       string `gorm:"column:timetable_subject_name;type:varchar(160);not null"       json:"timetable_subject_name"`
	TimetableSubjectTeacher    string `gorm:"column:timetable_subject_teacher;type:varchar(160);not null"    json:"timetable_subject_teacher"`
	TimetableSubjectDepartment string `gorm:"column:timetable_subject_department;type:varchar(120);not null" json:"timetable_subject_department"`
	TimetableSubjectSemester   string `gorm:"column:timetable_subject_semester;type:varchar(120);not null"   json:"timetable_subject_semester"`

	// ============ Atribut ============
	TimetableSubjectIsLab          bool `gorm:"column:timetable_subject_is_lab;not null;default:false"   json:"timetable_subject_is_lab"`
	TimetableSubjectPeriodsPerWeek int  `gorm:"column:timetable_subject_periods_per_week;not null"       json:"timetable_subject_periods_per_week"`
	TimetableSubjectCapacity       *int `gorm:"column:timetable_subject_capacity"                        json:"timetable_subject_capacity,omitempty"`

	// ============ Audit ============
	TimetableSubjectCreatedAt time.Time `gorm:"column:timetable_subject_created_at;type:timestamptz;not null;autoCreateTime" json:"timetable_subject_created_at"`
	TimetableSubjectUpdatedAt time.Time `gorm:"column:timetable_subject_updated_at;type:timestamptz;not null;autoUpdateTime" json:"timetable_subject_updated_at"`
}

func (SubjectModel) TableName() string { return "timetable_subjects" }

func SubjectModelFrom(workspace string, order int, s Subject) SubjectModel {
	return SubjectModel{
		TimetableSubjectID:             s.ID,
		TimetableSubjectWorkspace:      workspace,
		TimetableSubjectOrder:          order,
		TimetableSubjectName:           s.Name,
		TimetableSubjectTeacher:        s.Teacher,
		TimetableSubjectDepartment:     s.Department,
		TimetableSubjectSemester:       s.Semester,
		TimetableSubjectIsLab:          s.IsLab,
		TimetableSubjectPeriodsPerWeek: s.PeriodsPerWeek,
		TimetableSubjectCapacity:       cloneInt(s.Capacity),
	}
}

func (m SubjectModel) ToSubject() Subject {
	return Subject{
		ID:             m.TimetableSubjectID,
		Name:           m.TimetableSubjectName,
		Teacher:        m.TimetableSubjectTeacher,
		Department:     m.TimetableSubjectDepartment,
		Semester:       m.TimetableSubjectSemester,
		IsLab:          m.TimetableSubjectIsLab,
		PeriodsPerWeek: m.TimetableSubjectPeriodsPerWeek,
		Capacity:       cloneInt(m.TimetableSubjectCapacity),
	}
}

// GridModel menyimpan satu grid per workspace sebagai JSONB (hari -> array).
type GridModel struct {
	TimetableGridWorkspace string         `gorm:"column:timetable_grid_workspace;type:varchar(80);primaryKey"                json:"timetable_grid_workspace"`
	TimetableGridData      datatypes.JSON `gorm:"column:timetable_grid_data;type:jsonb;not null"                             json:"timetable_grid_data"`
	TimetableGridSimulated bool           `gorm:"column:timetable_grid_simulated;not null;default:false"                     json:"timetable_grid_simulated"`
	TimetableGridCreatedAt time.Time      `gorm:"column:timetable_grid_created_at;type:timestamptz;not null;autoCreateTime" json:"timetable_grid_created_at"`
	TimetableGridUpdatedAt time.Time      `gorm:"column:timetable_grid_updated_at;type:timestamptz;not null;autoUpdateTime" json:"timetable_grid_updated_at"`
}

func (GridModel) TableName() string { return "timetable_grids" }
