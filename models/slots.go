package models

// DaySlots partitions a day's bookable start times into a morning and an
// afternoon bucket, split at 12:00.
type DaySlots struct {
	AM []string `json:"am"`
	PM []string `json:"pm"`
}

// WeekAvailability maps "2006-01-02" dates to that day's slot buckets.
type WeekAvailability map[string]DaySlots
