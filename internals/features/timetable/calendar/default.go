package calendar

var defaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var defaultSlots = []Slot{
	{Time: TimeRange{"9:00 AM", "9:45 AM"}, Kind: KindClassPeriod, Label: "1st Period"},
	{Time: TimeRange{"9:45 AM", "10:35 AM"}, Kind: KindClassPeriod, Label: "2nd Period"},
	{Time: TimeRange{"10:35 AM", "10:50 AM"}, Kind: KindBreak, Label: "Break"},
	{Time: TimeRange{"10:50 AM", "11:35 AM"}, Kind: KindClassPeriod, Label: "3rd Period"},
	{Time: TimeRange{"11:35 AM", "12:20 PM"}, Kind: KindClassPeriod, Label: "4th Period"},
	{Time: TimeRange{"12:20 PM", "1:05 PM"}, Kind: KindClassPeriod, Label: "5th Period"},
	{Time: TimeRange{"1:05 PM", "2:00 PM"}, Kind: KindLunch, Label: "Lunch"},
	{Time: TimeRange{"2:00 PM", "2:45 PM"}, Kind: KindClassPeriod, Label: "6th Period"},
	{Time: TimeRange{"2:45 PM", "3:30 PM"}, Kind: KindClassPeriod, Label: "7th Period"},
	{Time: TimeRange{"3:30 PM", "3:45 PM"}, Kind: KindBreak, Label: "Break"},
	{Time: TimeRange{"3:45 PM", "4:30 PM"}, Kind: KindClassPeriod, Label: "8th Period"},
}

// Default: Senin–Jumat, 8 jam pelajaran dengan dua break dan satu lunch.
func Default() *Calendar {
	c, err := New(defaultDays, defaultSlots)
	if err != nil {
		panic(err)
	}
	return c
}
