package models

// WorkingHoursEntry is a provider's availability window for one weekday.
// StartTime and EndTime are wall-clock strings, either 12-hour ("9:00 AM")
// or 24-hour ("17:30"). An entry with IsAvailable false, or with missing or
// malformed times, yields no bookable slots.
type WorkingHoursEntry struct {
	Weekday     string `bson:"weekday" json:"weekday"` // "Sunday" .. "Saturday"
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
	StartTime   string `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime     string `bson:"endTime,omitempty" json:"endTime,omitempty"`
}
