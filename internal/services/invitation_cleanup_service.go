package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgconn"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/repositories"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
)

const cleanupRetryDelay = 3 * time.Second

// InvitationCleanupService expires overdue invitations each night so
// stale tokens stop being accepted and listings reflect reality.
type InvitationCleanupService interface {
	CleanupDaily(ctx context.Context) error
}

type invitationCleanupService struct {
	invites repositories.InvitationRepository
}

func NewInvitationCleanupService(invites repositories.InvitationRepository) InvitationCleanupService {
	return &invitationCleanupService{invites: invites}
}

func (s *invitationCleanupService) CleanupDaily(ctx context.Context) error {
	n, err := s.expireWithRetry(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to expire overdue invitations")
		return err
	}
	if n > 0 {
		utils.Logger.Infof("Expired %d overdue invitation(s)", n)
	}
	return nil
}

// expireWithRetry retries once on transient network errors (EOF,
// pgconn safe-to-retry, closed connection) after a small delay.
func (s *invitationCleanupService) expireWithRetry(ctx context.Context) (int64, error) {
	n, err := s.invites.ExpireOverdue(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) || pgconn.SafeToRetry(err) ||
			strings.Contains(err.Error(), "connection was closed") {
			utils.Logger.WithError(err).Warn("invitation cleanup hit transient DB error; retrying once")
			time.Sleep(cleanupRetryDelay)
			return s.invites.ExpireOverdue(ctx)
		}
		return 0, err
	}
	return n, nil
}
