package sync

import (
	"context"
	"log"
	"time"

	"studyseat-dashboard/config"
	"studyseat-dashboard/internal/backend"
	"studyseat-dashboard/internal/layout"
	"studyseat-dashboard/internal/notification"
	"studyseat-dashboard/internal/state"
)

// Service performs the full refresh cycle: fetch the canonical data from the
// backend, reconcile the room/table model, swap the snapshot into the cache.
// Consistency is achieved by full refresh, never by targeted patching.
type Service struct {
	cfg        *config.Config
	client     *backend.Client
	cache      *state.Cache
	workerPool *notification.WorkerPool

	// Expired student IDs observed in the previous cycle; alerts fire only on
	// the not-expired -> expired transition.
	prevExpired map[int64]bool
	primed      bool
}

// NewService creates the refresh service. workerPool may be nil when push
// notifications are not configured.
func NewService(cfg *config.Config, client *backend.Client, cache *state.Cache, workerPool *notification.WorkerPool) *Service {
	return &Service{
		cfg:         cfg,
		client:      client,
		cache:       cache,
		workerPool:  workerPool,
		prevExpired: make(map[int64]bool),
	}
}

// Run refreshes on the configured interval until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Refresh.Enabled {
		log.Println("Background refresh is disabled. Not starting.")
		return
	}
	log.Println("Starting refresh service...")

	s.RefreshOnce(ctx)

	timer := time.NewTimer(s.cfg.Refresh.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresh service shutting down.")
			return
		case <-timer.C:
			s.RefreshOnce(ctx)
			timer.Reset(s.cfg.Refresh.Interval)
		}
	}
}

// RefreshOnce performs a single full refresh cycle. Any fetch error aborts the
// cycle and leaves the previous snapshot intact, so a failed mutation or a
// flaky backend never half-updates the model.
func (s *Service) RefreshOnce(ctx context.Context) error {
	now := time.Now().UTC()

	students, err := s.client.CompleteInfo(ctx)
	if err != nil {
		log.Printf("Refresh aborted: fetching student info failed: %v", err)
		return err
	}

	availableTables, err := s.client.AvailableTables(ctx)
	if err != nil {
		log.Printf("Refresh aborted: fetching available tables failed: %v", err)
		return err
	}

	roomOptions, err := s.client.Rooms(ctx)
	if err != nil {
		log.Printf("Refresh aborted: fetching rooms failed: %v", err)
		return err
	}

	rooms, tables := layout.BuildRooms(s.cfg.Layout.Rooms, s.cfg.Layout.TablesPerRoom)
	if skipped := layout.Reconcile(tables, students); skipped > 0 {
		log.Printf("Reconciliation skipped %d student records with unknown or missing table ids", skipped)
	}

	s.cache.Apply(&state.Snapshot{
		Rooms:           rooms,
		Tables:          tables,
		Students:        students,
		AvailableTables: availableTables,
		RoomOptions:     roomOptions,
		RefreshedAt:     now,
	})

	s.dispatchExpiryAlerts(now, students)
	return nil
}

// dispatchExpiryAlerts diffs the expired set against the previous cycle and
// queues one alert per newly-expired student. The first cycle only primes the
// baseline so a restart does not replay alerts for long-expired students.
func (s *Service) dispatchExpiryAlerts(now time.Time, students []layout.StudentInfo) {
	expired := make(map[int64]bool, len(students))
	for i := range students {
		v := layout.ValidityWindow(now, students[i])
		if !v.Expired {
			continue
		}
		expired[students[i].ID] = true

		if !s.primed || s.prevExpired[students[i].ID] || s.workerPool == nil {
			continue
		}
		s.workerPool.Dispatch(notification.ExpiryAlert{
			StudentID:   students[i].ID,
			StudentName: students[i].StudentName,
			RoomNumber:  students[i].RoomNumber,
			TableNumber: students[i].TableNumber,
			DueDate:     v.Expiry.Format("2006-01-02"),
		})
	}

	s.prevExpired = expired
	s.primed = true
}
