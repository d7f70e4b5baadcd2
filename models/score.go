package models

import "time"

// DailyScore is the derived completion metric for the current day. It is
// recomputed in memory from the task set and never persisted.
type DailyScore struct {
	CompletedTasks int       `json:"completed_tasks"`
	TotalTasks     int       `json:"total_tasks"`
	Percentage     float64   `json:"percentage"`
	Date           time.Time `json:"date"`
}
