package cron

import (
	"context"
	"time"

	"github.com/Marga-Ghale/ora-group-views/internal/repository"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = time.Minute

// Scheduler handles scheduled maintenance of the membership store
type Scheduler struct {
	cron        *cron.Cron
	invitations repository.InvitationExpirer
	groupCache  repository.GroupCachePurger
}

// NewScheduler creates a scheduler. groupCache may be nil when caching is disabled.
func NewScheduler(invitations repository.InvitationExpirer, groupCache repository.GroupCachePurger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		invitations: invitations,
		groupCache:  groupCache,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start() error {
	// Every 15 minutes - expire stale invitations so pending counts stay accurate
	if _, err := s.cron.AddFunc("*/15 * * * *", func() {
		logrus.Debug("[Cron] Running invitation expiry...")
		s.expireInvitations()
	}); err != nil {
		return err
	}

	// Every night at 3 AM - drop cached groups
	if s.groupCache != nil {
		if _, err := s.cron.AddFunc("0 3 * * *", func() {
			logrus.Debug("[Cron] Running group cache purge...")
			s.purgeGroupCache()
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	logrus.WithField("jobs", len(s.cron.Entries())).Info("[Cron] Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logrus.Info("[Cron] Scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) expireInvitations() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := s.invitations.ExpireInvitations(ctx)
	if err != nil {
		logrus.WithError(err).Error("[Cron] Failed to expire invitations")
		return
	}
	if count > 0 {
		logrus.WithField("count", count).Info("[Cron] Expired stale invitations")
	}
}

func (s *Scheduler) purgeGroupCache() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := s.groupCache.PurgeGroups(ctx)
	if err != nil {
		logrus.WithError(err).Error("[Cron] Failed to purge group cache")
		return
	}
	logrus.WithField("count", count).Info("[Cron] Purged cached groups")
}
