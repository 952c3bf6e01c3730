package pipeline

import "time"

// Stats describes one pipeline run.
type Stats struct {
	Rows         int           `json:"rows"`
	Canonical    int           `json:"canonical"`
	Dropped      int           `json:"dropped"`
	Unclassified int           `json:"unclassified"`
	Duration     time.Duration `json:"duration"`
}
