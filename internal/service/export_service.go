package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kpiexport/gateway/internal/dto"
	"github.com/kpiexport/gateway/internal/models"
	"github.com/kpiexport/gateway/internal/repository"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
	"github.com/kpiexport/gateway/pkg/jobs"
)

type scheduleFetcher interface {
	Schedule(ctx context.Context, groupName, lastName string) (*models.GroupSchedule, error)
}

type calendarClient interface {
	CreateCalendar(ctx context.Context, token, summary, location string) (string, error)
	CreateEvent(ctx context.Context, token, calendarID string, event models.CalendarEvent) error
}

type tokenAcquirer interface {
	TokenForSession(ctx context.Context, sessionID string) (string, error)
}

type termResolver interface {
	Current() models.Term
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ProgressListener observes (completed, total) pairs as an export run
// advances. Completed is monotonically non-decreasing within one run.
type ProgressListener func(jobID string, completed, total int)

// ExportService is the export orchestrator: it accepts export requests,
// runs them on the job queue, and drives token acquisition, schedule
// fetch, calendar creation and the concurrent event fan-out, publishing
// progress after every settled network step.
type ExportService struct {
	repo       *repository.ExportRepository
	prefs      repository.PreferenceRepository
	schedules  scheduleFetcher
	calendars  calendarClient
	auth       tokenAcquirer
	terms      termResolver
	builder    *EventService
	queue      jobDispatcher
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	onProgress ProgressListener
}

// NewExportService constructs the orchestrator.
func NewExportService(
	repo *repository.ExportRepository,
	prefs repository.PreferenceRepository,
	schedules scheduleFetcher,
	calendars calendarClient,
	auth tokenAcquirer,
	terms termResolver,
	builder *EventService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		repo:      repo,
		prefs:     prefs,
		schedules: schedules,
		calendars: calendars,
		auth:      auth,
		terms:     terms,
		builder:   builder,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// SetQueue wires the job queue whose handler is Process. Separate from
// the constructor because the queue needs the service's Process as its
// handler.
func (s *ExportService) SetQueue(queue jobDispatcher) {
	s.queue = queue
}

// SetProgressListener installs an observer for progress publications.
func (s *ExportService) SetProgressListener(listener ProgressListener) {
	s.onProgress = listener
}

// Start validates the request, applies the once-per-device auth intro
// gate, records the job and enqueues it.
func (s *ExportService) Start(ctx context.Context, req dto.CreateExportRequest) (*models.ExportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}

	if req.DeviceID != "" {
		prefs, err := s.prefs.Get(ctx, req.DeviceID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load device preferences")
		}
		if !prefs.AuthIntroShown {
			return nil, appErrors.ErrAuthIntroRequired
		}

		prefs.Group = req.Group
		prefs.CalendarName = req.CalendarName
		prefs.StudentName = req.StudentName
		if err := s.prefs.Put(ctx, req.DeviceID, prefs); err != nil {
			s.logger.Warn("failed to store device preferences", zap.Error(err))
		}
	}

	job := &models.ExportJob{
		ID:           uuid.NewString(),
		Group:        req.Group,
		CalendarName: req.CalendarName,
		StudentName:  req.StudentName,
		Status:       models.ExportStatusQueued,
		CreatedAt:    time.Now().UTC(),
	}
	s.repo.Create(job)

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "export", Payload: req}); err != nil {
		s.failJob(job.ID, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export"))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}

	s.metrics.IncExportsStarted()
	return job, nil
}

// Status returns a snapshot of the job.
func (s *ExportService) Status(_ context.Context, id string) (*models.ExportJob, error) {
	return s.repo.Get(id)
}

// Process runs one export job end to end. It is the queue handler; the
// returned error is recorded on the job, never retried.
func (s *ExportService) Process(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.CreateExportRequest)
	if !ok {
		err := appErrors.Clone(appErrors.ErrInternal, "unexpected export payload")
		s.failJob(job.ID, err)
		return err
	}

	s.setStatus(job.ID, models.ExportStatusAuthorizing)
	token, err := s.auth.TokenForSession(ctx, req.AuthSessionID)
	if err != nil {
		s.failJob(job.ID, err)
		return err
	}

	s.setStatus(job.ID, models.ExportStatusFetching)
	schedule, err := s.schedules.Schedule(ctx, req.Group, req.StudentName)
	if err != nil {
		s.failJob(job.ID, err)
		return err
	}

	term := s.terms.Current()
	events, err := s.builder.BuildAll(schedule.Entries, term)
	if err != nil {
		s.failJob(job.ID, err)
		return err
	}

	total := len(events) + 1
	if err := s.repo.Update(job.ID, func(j *models.ExportJob) {
		j.Status = models.ExportStatusInProgress
		j.Completed = 0
		j.Total = total
	}); err != nil {
		return err
	}
	s.publish(job.ID, 0, total)

	calendarID, err := s.calendars.CreateCalendar(ctx, token, req.CalendarName, s.builder.Location())
	if err != nil {
		wrapped := appErrors.Wrap(err, appErrors.ErrCalendarCreate.Code, appErrors.ErrCalendarCreate.Status, appErrors.ErrCalendarCreate.Message)
		s.failJob(job.ID, wrapped)
		return wrapped
	}
	s.advance(job.ID, func(j *models.ExportJob) {
		j.CalendarID = &calendarID
	})

	created, failed := s.createEvents(ctx, job.ID, token, calendarID, events)
	s.metrics.AddEventResults(created, failed)

	if failed > 0 {
		err := appErrors.Clone(appErrors.ErrEventCreate, fmt.Sprintf("%d of %d calendar events could not be created", failed, len(events)))
		s.failJob(job.ID, err, func(j *models.ExportJob) {
			j.Created = created
			j.Failed = failed
		})
		return err
	}

	now := time.Now().UTC()
	_ = s.repo.Update(job.ID, func(j *models.ExportJob) {
		j.Status = models.ExportStatusFinished
		j.Created = created
		j.FinishedAt = &now
	})
	s.metrics.ObserveExportFinished(string(models.ExportStatusFinished))
	s.logger.Info("export finished",
		zap.String("job_id", job.ID),
		zap.String("group", req.Group),
		zap.Int("events", created),
	)
	return nil
}

// createEvents fires one create call per event concurrently and waits
// for every outcome; a failed call never hides the settlement of the
// others. Progress increments are commutative, order does not matter.
func (s *ExportService) createEvents(ctx context.Context, jobID, token, calendarID string, events []models.CalendarEvent) (created, failed int) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, event := range events {
		wg.Add(1)
		go func(event models.CalendarEvent) {
			defer wg.Done()
			if err := s.calendars.CreateEvent(ctx, token, calendarID, event); err != nil {
				s.logger.Warn("event create failed",
					zap.String("job_id", jobID),
					zap.String("summary", event.Summary),
					zap.Error(err),
				)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			created++
			mu.Unlock()
			s.advance(jobID, nil)
		}(event)
	}

	wg.Wait()
	return created, failed
}

// advance increments the completed counter, applies an optional extra
// mutation, and publishes progress.
func (s *ExportService) advance(jobID string, extra func(*models.ExportJob)) {
	var completed, total int
	_ = s.repo.Update(jobID, func(j *models.ExportJob) {
		j.Completed++
		if extra != nil {
			extra(j)
		}
		completed = j.Completed
		total = j.Total
	})
	s.publish(jobID, completed, total)
}

func (s *ExportService) setStatus(jobID string, status models.ExportStatus) {
	_ = s.repo.Update(jobID, func(j *models.ExportJob) {
		j.Status = status
	})
}

func (s *ExportService) failJob(jobID string, err error, extras ...func(*models.ExportJob)) {
	msg := appErrors.FromError(err).Message
	now := time.Now().UTC()
	_ = s.repo.Update(jobID, func(j *models.ExportJob) {
		j.Status = models.ExportStatusFailed
		j.ErrorMessage = &msg
		j.FinishedAt = &now
		for _, extra := range extras {
			extra(j)
		}
	})
	s.metrics.ObserveExportFinished(string(models.ExportStatusFailed))
	s.logger.Warn("export failed", zap.String("job_id", jobID), zap.Error(err))
}

func (s *ExportService) publish(jobID string, completed, total int) {
	if s.onProgress != nil {
		s.onProgress(jobID, completed, total)
	}
}
