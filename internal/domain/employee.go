package domain

import "time"

// Employee is a roster entry used for worker attribution on scans.
type Employee struct {
	ID        string
	Name      string
	Badge     string
	Active    bool
	CreatedAt time.Time
}
