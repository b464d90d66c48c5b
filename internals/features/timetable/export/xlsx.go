// file: internals/features/timetable/export/xlsx.go
package export

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/engine"
	"timetable_backend/internals/features/timetable/palette"
)

const SheetName = "Timetable"

type xlsxStyles struct {
	f      *excelize.File
	header int
	pause  int
	byHex  map[string]int
}

func (s *xlsxStyles) fill(hex string) (int, error) {
	if id, ok := s.byHex[hex]; ok {
		return id, nil
	}
	id, err := s.f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return 0, err
	}
	s.byHex[hex] = id
	return id, nil
}

// XLSX: layout sama dengan CSV (kolom A = hari, satu kolom per slot), tapi
// blok lab di-merge dan sel diwarnai sesuai departemen.
func XLSX(w io.Writer, doc Document, cal *calendar.Calendar) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	st := &xlsxStyles{f: f, byHex: map[string]int{}}
	var err error
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F1F5F9"}},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	}); err != nil {
		return err
	}
	if st.pause, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Color: "94A3B8"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return err
	}

	for i, h := range header(cal) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(cal.Slots())+1, 1)
	if err := f.SetCellStyle(SheetName, "A1", last, st.header); err != nil {
		return err
	}

	for r, row := range doc.Rows {
		if err := writeXLSXRow(f, st, r+2, row, doc.Colors, cal); err != nil {
			return err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(cal.Slots()) + 1)
	if err := f.SetColWidth(SheetName, "B", lastCol, 24); err != nil {
		return err
	}
	return f.Write(w)
}

func writeXLSXRow(f *excelize.File, st *xlsxStyles, rowNum int, row engine.DayRow, colors map[string]palette.Color, cal *calendar.Calendar) error {
	dayCell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetCellValue(SheetName, dayCell, row.Day); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, dayCell, dayCell, st.header); err != nil {
		return err
	}

	for _, c := range row.Cells {
		start, _ := excelize.CoordinatesToCellName(c.SlotIndex+2, rowNum)
		switch c.Kind {
		case engine.CellBreak, engine.CellLunch:
			if err := f.SetCellValue(SheetName, start, c.Label); err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetName, start, start, st.pause); err != nil {
				return err
			}

		case engine.CellOccupied:
			end := start
			if c.Span > 1 {
				pos, ok := cal.Position(c.PeriodIndex + c.Span - 1)
				if ok {
					end, _ = excelize.CoordinatesToCellName(pos+2, rowNum)
					if err := f.MergeCell(SheetName, start, end); err != nil {
						return err
					}
				}
			}
			if err := f.SetCellValue(SheetName, start, CellText(c.Assignment)); err != nil {
				return err
			}
			col, ok := colors[c.Assignment.Department]
			if !ok {
				col = palette.Neutral
			}
			id, err := st.fill(strings.ToUpper(col.Hex))
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetName, start, end, id); err != nil {
				return err
			}
		}
	}
	return nil
}
