package repository

import (
	"sync"

	"github.com/kpiexport/gateway/internal/models"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
)

// ExportRepository holds export jobs in memory. Export state is ephemeral
// by contract: nothing survives a process restart and there is no retry
// state to persist.
type ExportRepository struct {
	mu   sync.RWMutex
	jobs map[string]*models.ExportJob
}

// NewExportRepository constructs an empty job store.
func NewExportRepository() *ExportRepository {
	return &ExportRepository{jobs: make(map[string]*models.ExportJob)}
}

// Create registers a new job.
func (r *ExportRepository) Create(job *models.ExportJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *job
	r.jobs[job.ID] = &copied
}

// Get returns a snapshot of the job.
func (r *ExportRepository) Get(id string) (*models.ExportJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	copied := *job
	return &copied, nil
}

// Update mutates the job under the store lock. Mutations from concurrent
// event-creation goroutines serialize here, which keeps the progress
// counter commutative.
func (r *ExportRepository) Update(id string, mutate func(*models.ExportJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	mutate(job)
	return nil
}
