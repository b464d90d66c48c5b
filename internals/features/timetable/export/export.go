// file: internals/features/timetable/export/export.go
package export

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strings"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/engine"
	"timetable_backend/internals/features/timetable/model"
	"timetable_backend/internals/features/timetable/palette"
)

func CellText(a *model.Assignment) string {
	if a == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(a.Subject)
	if a.IsLab {
		b.WriteString(" (Lab)")
	}
	b.WriteString(" - ")
	b.WriteString(a.Teacher)
	b.WriteString(" [")
	b.WriteString(a.Semester)
	b.WriteString("]")
	if a.Capacity != nil {
		fmt.Fprintf(&b, " %d seats", *a.Capacity)
	}
	return b.String()
}

func header(cal *calendar.Calendar) []string {
	slots := cal.Slots()
	h := make([]string, 0, len(slots)+1)
	h = append(h, "Day")
	for _, s := range slots {
		h = append(h, fmt.Sprintf("%s (%s)", s.Label, s.Time))
	}
	return h
}

// CSV menulis satu kolom per slot template. Sel hasil merge mengisi kolom
// pertama yang ditutupnya; kolom sisanya dibiarkan kosong.
func CSV(w io.Writer, rows []engine.DayRow, cal *calendar.Calendar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(cal)); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{row.Day}
		for _, c := range row.Cells {
			switch c.Kind {
			case engine.CellBreak, engine.CellLunch:
				rec = append(rec, c.Label)
			case engine.CellOccupied:
				rec = append(rec, CellText(c.Assignment))
				for i := 1; i < c.Span; i++ {
					rec = append(rec, "")
				}
			default:
				rec = append(rec, "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var printable = template.Must(template.New("timetable").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:sans-serif;margin:24px}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #cbd5e1;padding:6px;text-align:center;font-size:12px}
th{background:#f1f5f9}
td.pause{background:#f8fafc;color:#94a3b8;font-weight:600}
td.busy{font-weight:600}
small{display:block;font-weight:400;opacity:.8}
@media print{body{margin:0}}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Simulated}}<p><em>Simulated schedule (generator unavailable).</em></p>{{end}}
<table>
<thead><tr><th>Day</th>{{range .Slots}}<th><small>{{.Time}}</small>{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><th>{{.Day}}</th>{{range .Cells}}{{if .Pause}}<td class="pause">{{.Label}}</td>{{else if .Assignment}}<td class="busy" colspan="{{.Span}}" style="border-left:4px solid {{.Color}}">{{.Assignment.Subject}}<small>{{.Assignment.Teacher}}</small><small>{{.Assignment.Semester}}{{if .Assignment.Capacity}} · {{.Assignment.Capacity}} seats{{end}}</small></td>{{else}}<td></td>{{end}}{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type htmlCell struct {
	engine.Cell
	Pause bool
	Color template.CSS
}

type htmlRow struct {
	Day   string
	Cells []htmlCell
}

type Document struct {
	Title     string
	Simulated bool
	Rows      []engine.DayRow
	Colors    map[string]palette.Color
}

// HTML merender dokumen siap cetak; sel lab yang ter-merge memakai colspan.
func HTML(w io.Writer, doc Document, cal *calendar.Calendar) error {
	rows := make([]htmlRow, 0, len(doc.Rows))
	for _, r := range doc.Rows {
		hr := htmlRow{Day: r.Day}
		for _, c := range r.Cells {
			hc := htmlCell{Cell: c, Pause: c.Kind == engine.CellBreak || c.Kind == engine.CellLunch}
			if c.Assignment != nil {
				col, ok := doc.Colors[c.Assignment.Department]
				if !ok {
					col = palette.Neutral
				}
				hc.Color = template.CSS(col.Hex)
			}
			hr.Cells = append(hr.Cells, hc)
		}
		rows = append(rows, hr)
	}
	title := doc.Title
	if title == "" {
		title = "Weekly Timetable"
	}
	return printable.Execute(w, struct {
		Title     string
		Simulated bool
		Slots     []calendar.Slot
		Rows      []htmlRow
	}{title, doc.Simulated, cal.Slots(), rows})
}
