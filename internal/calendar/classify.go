package calendar

// Classification lists the holiday and vacation names that apply on one day.
type Classification struct {
	Holidays  []string
	Vacations []string
}

// Empty reports whether nothing matched.
func (c Classification) Empty() bool {
	return len(c.Holidays) == 0 && len(c.Vacations) == 0
}

// Classify returns the holidays falling exactly on d and every vacation period
// containing d. All periods are checked; overlapping periods all match.
// Names are returned once each, in calendar order.
func Classify(cal *RegionCalendar, d Date) Classification {
	var out Classification
	seen := make(map[string]bool)
	for _, h := range cal.Holidays {
		if h.Date == d && !seen["h:"+h.Name] {
			seen["h:"+h.Name] = true
			out.Holidays = append(out.Holidays, h.Name)
		}
	}
	for _, v := range cal.Vacations {
		if v.Contains(d) && !seen["v:"+v.Name] {
			seen["v:"+v.Name] = true
			out.Vacations = append(out.Vacations, v.Name)
		}
	}
	return out
}
