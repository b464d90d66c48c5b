// file: internals/features/timetable/importer/importer.go
package importer

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"timetable_backend/internals/features/timetable/model"
)

// Format satu baris:
//
//	Subject Name,Teacher Name,Department,Semester,Periods Per Week,Is Lab[,Capacity]
const (
	minColumns = 6
	maxColumns = 7
)

type Row struct {
	Line    int            `json:"line"`
	Raw     string         `json:"raw"`
	Valid   bool           `json:"valid"`
	Error   string         `json:"error,omitempty"`
	Subject *model.Subject `json:"subject,omitempty"`
}

type Report struct {
	Rows []Row `json:"rows"`
}

// Subjects: hanya baris yang valid, urutan sesuai input.
func (r Report) Subjects() []model.Subject {
	out := make([]model.Subject, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.Valid && row.Subject != nil {
			out = append(out, *row.Subject)
		}
	}
	return out
}

func (r Report) ValidCount() int { return len(r.Subjects()) }

func (r Report) InvalidCount() int { return len(r.Rows) - r.ValidCount() }

var validate = validator.New()

// Parse memvalidasi setiap baris secara independen. Baris kosong dilewati;
// baris invalid dilaporkan tanpa menghalangi baris valid.
func Parse(text string) Report {
	var rep Report
	text = strings.TrimPrefix(text, "\ufeff") // BOM dari ekspor spreadsheet
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := Row{Line: i + 1, Raw: line}
		s, err := parseLine(line)
		if err != nil {
			row.Error = err.Error()
			row.Subject = s
		} else {
			row.Valid = true
			row.Subject = s
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

func parseLine(line string) (*model.Subject, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	cols, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot parse line: %v", err)
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	if len(cols) < minColumns || len(cols) > maxColumns {
		return nil, fmt.Errorf("expected %d or %d columns, found %d", minColumns, maxColumns, len(cols))
	}

	s := &model.Subject{
		Name:       cols[0],
		Teacher:    cols[1],
		Department: cols[2],
		Semester:   cols[3],
	}
	if s.Name == "" || s.Teacher == "" || s.Department == "" || s.Semester == "" || cols[4] == "" || cols[5] == "" {
		return s, fmt.Errorf("one or more required fields are empty")
	}

	periods, err := strconv.Atoi(cols[4])
	if err != nil || periods < 1 {
		return s, fmt.Errorf("periods per week must be a number greater than 0")
	}
	s.PeriodsPerWeek = periods
	s.IsLab = strings.EqualFold(cols[5], "true")

	if len(cols) == maxColumns && cols[6] != "" {
		capacity, err := strconv.Atoi(cols[6])
		if err != nil || capacity < 1 {
			return s, fmt.Errorf("capacity must be a number greater than 0")
		}
		s.Capacity = &capacity
	}

	if err := validate.Struct(s); err != nil {
		return s, describe(err)
	}
	s.ID = uuid.New()
	return s, nil
}

func describe(err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	if fe.Param() != "" {
		return fmt.Errorf("%s failed %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
}
