package queue

import "github.com/desertthunder/qfill/internal/models"

// Exclusions computes the dedup set for one tick: every URI currently in the
// queue plus everything still retained in the recent-enqueue history. Any
// candidate pool must be filtered through this set before sampling.
func Exclusions(entries []models.QueueEntry, history *RecentHistory) map[string]struct{} {
	exclude := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		exclude[entry.URI] = struct{}{}
	}

	if history != nil {
		for _, uri := range history.Snapshot() {
			exclude[uri] = struct{}{}
		}
	}

	return exclude
}
