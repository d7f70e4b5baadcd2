package taskstore

import "taskory/models"

// recomputeScoreLocked derives the daily score from the current task set.
// Called after every mutation that changes tasks, never lazily on read.
// Completed counts tasks finished on today's wall-clock date; the percentage
// is against the full current task count, 0 when the cache is empty.
func (s *Store) recomputeScoreLocked() {
	now := s.now()
	completed := 0
	for _, t := range s.tasks {
		if t.Status == models.StatusCompleted && t.CompletedAt != nil && sameDay(*t.CompletedAt, now) {
			completed++
		}
	}
	total := len(s.tasks)
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	s.score = models.DailyScore{
		CompletedTasks: completed,
		TotalTasks:     total,
		Percentage:     pct,
		Date:           now,
	}
}
