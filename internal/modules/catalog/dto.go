package catalog

type DaySchedule struct {
	Date   string `json:"date"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}
