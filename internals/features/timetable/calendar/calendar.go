// file: internals/features/timetable/calendar/calendar.go
package calendar

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"timetable_backend/internals/features/timetable/errs"
)

type SlotKind string

const (
	KindClassPeriod SlotKind = "PERIOD"
	KindBreak       SlotKind = "BREAK"
	KindLunch       SlotKind = "LUNCH"
)

type TimeRange struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end"   validate:"required"`
}

func (r TimeRange) String() string { return r.Start + " – " + r.End }

type Slot struct {
	Index int       `json:"index"`
	Time  TimeRange `json:"time"`
	Kind  SlotKind  `json:"kind"  validate:"required,oneof=PERIOD BREAK LUNCH"`
	Label string    `json:"label" validate:"required"`
}

func (s Slot) IsClassPeriod() bool { return s.Kind == KindClassPeriod }

type template struct {
	Days  []string `validate:"required,min=1,dive,required"`
	Slots []Slot   `validate:"required,min=1,dive"`
}

// Calendar adalah template mingguan: urutan slot yang sama untuk setiap hari.
// Tidak punya state yang bisa diubah setelah New.
type Calendar struct {
	days      []string
	slots     []Slot
	periodPos []int // class-period index -> posisi di slots
}

var validate = validator.New()

func New(days []string, slots []Slot) (*Calendar, error) {
	t := template{Days: days, Slots: slots}
	if err := validate.Struct(t); err != nil {
		return nil, fmt.Errorf("%w: calendar: %v", errs.ErrValidation, err)
	}

	seen := make(map[string]struct{}, len(days))
	for _, d := range days {
		d = strings.TrimSpace(d)
		if _, dup := seen[d]; dup {
			return nil, fmt.Errorf("%w: calendar: duplicate day %q", errs.ErrValidation, d)
		}
		seen[d] = struct{}{}
	}

	c := &Calendar{
		days:  make([]string, len(days)),
		slots: make([]Slot, len(slots)),
	}
	for i, d := range days {
		c.days[i] = strings.TrimSpace(d)
	}
	for i, s := range slots {
		s.Index = i
		c.slots[i] = s
		if s.IsClassPeriod() {
			c.periodPos = append(c.periodPos, i)
		}
	}
	if len(c.periodPos) == 0 {
		return nil, fmt.Errorf("%w: calendar: no class-period slot", errs.ErrValidation)
	}
	return c, nil
}

func (c *Calendar) Days() []string {
	out := make([]string, len(c.days))
	copy(out, c.days)
	return out
}

func (c *Calendar) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

func (c *Calendar) ClassPeriodCount() int { return len(c.periodPos) }

func (c *Calendar) HasDay(day string) bool {
	for _, d := range c.days {
		if d == day {
			return true
		}
	}
	return false
}

// Position memetakan class-period index (0..N-1) ke posisi slot di template penuh.
func (c *Calendar) Position(periodIndex int) (int, bool) {
	if periodIndex < 0 || periodIndex >= len(c.periodPos) {
		return 0, false
	}
	return c.periodPos[periodIndex], true
}

// PeriodSlot mengembalikan Slot milik class-period index.
func (c *Calendar) PeriodSlot(periodIndex int) (Slot, bool) {
	pos, ok := c.Position(periodIndex)
	if !ok {
		return Slot{}, false
	}
	return c.slots[pos], true
}

// Adjacent true jika period i dan i+1 benar-benar bersebelahan di template
// (tidak ada Break/Lunch di antaranya).
func (c *Calendar) Adjacent(periodIndex int) bool {
	a, ok := c.Position(periodIndex)
	if !ok {
		return false
	}
	b, ok := c.Position(periodIndex + 1)
	if !ok {
		return false
	}
	return b == a+1
}

func (c *Calendar) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		Days             []string `json:"days"`
		Slots            []Slot   `json:"slots"`
		ClassPeriodCount int      `json:"class_period_count"`
	}{c.days, c.slots, len(c.periodPos)})
}
