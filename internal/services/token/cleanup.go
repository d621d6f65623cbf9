package token

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// CleanupService periodically removes expired refresh-token records.
type CleanupService struct {
	service  *Service
	interval time.Duration
	stopChan chan bool
}

// NewCleanupService creates a cleanup service over the token service.
func NewCleanupService(service *Service, interval time.Duration) *CleanupService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &CleanupService{
		service:  service,
		interval: interval,
		stopChan: make(chan bool),
	}
}

// Start starts the token cleanup service
func (s *CleanupService) Start() {
	go s.run()
	logrus.Info("Token cleanup service started")
}

// Stop stops the token cleanup service
func (s *CleanupService) Stop() {
	s.stopChan <- true
	logrus.Info("Token cleanup service stopped")
}

// run runs the cleanup loop
func (s *CleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run initial cleanup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

// cleanup removes expired refresh tokens
func (s *CleanupService) cleanup() {
	count, err := s.service.CleanupExpired(context.Background())
	if err != nil {
		logrus.Errorf("Failed to cleanup expired refresh tokens: %v", err)
		return
	}
	if count > 0 {
		logrus.Infof("Removed %d expired refresh tokens", count)
	}
}
