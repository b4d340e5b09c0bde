package jobs

import (
	"log"
	"time"

	"github.com/percapital/faqbot-backend/internal/storage"
)

// CleanupJob sweeps abandoned sessions. Expiry is also checked lazily on
// read; the sweep keeps the store from accumulating dead entries.
type CleanupJob struct {
	store      storage.Store
	sessionTTL time.Duration
	interval   time.Duration
	stop       chan struct{}
	isRunning  bool
}

// NewCleanupJob creates a new session cleanup job
func NewCleanupJob(store storage.Store, sessionTTL time.Duration) *CleanupJob {
	return &CleanupJob{
		store:      store,
		sessionTTL: sessionTTL,
		interval:   time.Hour,
		stop:       make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (j *CleanupJob) Start() {
	if j.isRunning {
		log.Println("Cleanup job already running")
		return
	}
	j.isRunning = true
	log.Printf("Starting session cleanup job (TTL %v, every %v)", j.sessionTTL, j.interval)

	go j.run()
}

// Stop halts the sweep
func (j *CleanupJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	log.Println("Stopping session cleanup job...")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count, err := j.store.DeleteExpiredSessions(j.sessionTTL)
			if err != nil {
				log.Printf("❌ Session cleanup failed: %v", err)
				continue
			}
			if count > 0 {
				log.Printf("🧹 Cleaned up %d expired sessions", count)
			}
		case <-j.stop:
			return
		}
	}
}
