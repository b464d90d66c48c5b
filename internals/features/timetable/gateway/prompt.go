// file: internals/features/timetable/gateway/prompt.go
package gateway

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/model"
)

// Activities pengisi slot kosong per kelompok semester.
var fillerActivities = []string{"Library Hour", "Study Hall", "Tutorial Session", "Student Activity"}

// segments mengelompokkan class-period menjadi run yang benar-benar
// bersebelahan, mis. [[1 2] [3 4 5] [6 7] [8]] untuk calendar default.
func segments(cal *calendar.Calendar) [][]int {
	var out [][]int
	var cur []int
	for i := 0; i < cal.ClassPeriodCount(); i++ {
		cur = append(cur, i+1)
		if !cal.Adjacent(i) {
			out = append(out, cur)
			cur = nil
		}
	}
	return out
}

func BuildPrompt(subjects []model.Subject, cal *calendar.Calendar) (string, error) {
	catalog, err := sonic.ConfigStd.MarshalIndent(subjects, "", "  ")
	if err != nil {
		return "", err
	}

	days := cal.Days()
	n := cal.ClassPeriodCount()

	var segs []string
	for _, s := range segments(cal) {
		parts := make([]string, len(s))
		for i, p := range s {
			parts[i] = fmt.Sprint(p)
		}
		segs = append(segs, "["+strings.Join(parts, ", ")+"]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You schedule classes for a whole college. Produce a weekly timetable for %s.\n\n", strings.Join(days, ", "))
	b.WriteString("Hard rules, in priority order:\n")
	b.WriteString("1. periods_per_week is a hard limit. For is_lab=false it is the number of single periods in the week. ")
	b.WriteString("For is_lab=true it is the length of ONE continuous block scheduled once per week.\n")
	b.WriteString("2. A teacher is never in two places in the same period.\n")
	b.WriteString("3. All students of one semester form one group and have at most one class per period.\n")
	fmt.Fprintf(&b, "4. Periods are separated by breaks into these back-to-back runs (1-based): %s. ", strings.Join(segs, " "))
	b.WriteString("A lab block must fit entirely inside one run and is written as identical consecutive entries.\n")
	b.WriteString("5. Copy capacity from the subject when present.\n\n")
	b.WriteString("Quality rules:\n")
	fmt.Fprintf(&b, "- Every semester group has an activity in all %d periods of every day. ", n)
	fmt.Fprintf(&b, "Fill leftover periods with one of: %s (teacher may be \"Supervisor\" or \"Librarian\"; department and semester match the group).\n", strings.Join(fillerActivities, ", "))
	b.WriteString("- Spread subjects evenly across the week; avoid repeating a subject on the same day unless it is a lab block.\n")
	b.WriteString("- At most one lab session per semester group per day.\n")
	b.WriteString("- Avoid the same subject in the same period on consecutive days.\n\n")
	b.WriteString("Subjects:\n")
	b.Write(catalog)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Answer with JSON only: an object keyed by %s, each an array of exactly %d objects ", strings.Join(days, ", "), n)
	b.WriteString("with fields subject, teacher, department, semester, is_lab and optional capacity.\n")
	return b.String(), nil
}
