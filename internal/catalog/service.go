package catalog

import (
	"context"

	"golang.org/x/text/language"
)

// JobState is the progress of a submitted translation job.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
)

// JobStatus reports a translation job.
type JobStatus struct {
	ID    string   `json:"id"`
	State JobState `json:"state"`
	// CatalogHash is the Catalog.Hash the job was submitted for.
	CatalogHash string `json:"catalog_hash"`
	Error       string `json:"error,omitempty"`
}

// TranslationService is implemented by backends that translate a catalog
// into target locales. Implementations key jobs on Catalog.Hash, so
// resubmitting an unchanged catalog should return the existing job.
type TranslationService interface {
	Submit(ctx context.Context, c *Catalog, targets []language.Tag) (jobID string, err error)
	Status(ctx context.Context, jobID string) (JobStatus, error)
}
