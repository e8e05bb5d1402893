package models

import (
	"fmt"
	"time"

	"gantty/internal/dateutil"
)

// Date is a calendar day stored as a UTC-midnight instant. On the wire it
// is an ISO-8601 timestamp at UTC midnight; a bare YYYY-MM-DD is also
// accepted on input.
type Date struct {
	time.Time
}

// Day builds a Date from a year/month/day triple.
func Day(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewDate normalizes any instant to its UTC calendar day.
func NewDate(t time.Time) Date {
	return Date{dateutil.Normalize(t)}
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 input.
func ParseDate(s string) (Date, error) {
	t, err := dateutil.Parse(s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// AddDays shifts the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{dateutil.AddDays(d.Time, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dateutil.Normalize(d.Time).Format(dateutil.WireFormat) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a JSON string, got %s", b)
	}
	t, err := dateutil.Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// DefaultColor is assigned to projects created without one.
const DefaultColor = "#7aa2f7"

// Project groups an ordered set of tasks. Higher Order sorts earlier in
// the project list.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Order       int       `json:"order"`
	Tasks       []Task    `json:"tasks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Task is a scheduled unit of work. StartDate and EndDate are inclusive
// calendar days with StartDate <= EndDate. Order is an ascending sort key
// unique within the owning project; gaps of 10 are left between values so
// a single task can be slotted in without renumbering.
type Task struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"projectId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   Date      `json:"startDate"`
	EndDate     Date      `json:"endDate"`
	Completed   bool      `json:"completed"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Display fields filled in when tasks are flattened across projects.
	// Never persisted.
	ProjectName  string `json:"projectName,omitempty"`
	ProjectColor string `json:"projectColor,omitempty"`
}

// DurationDays is the inclusive length of the task in days; a task whose
// start and end are the same day lasts one day.
func (t Task) DurationDays() int {
	return dateutil.DaysBetween(t.StartDate.Time, t.EndDate.Time) + 1
}
