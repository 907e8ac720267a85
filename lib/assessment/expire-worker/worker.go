package assessmentexpireworker

import (
	"context"
	"time"

	"recruit-flow-backend/config"
	"recruit-flow-backend/db"
	assessmentstore "recruit-flow-backend/lib/assessment/store"
	baseworker "recruit-flow-backend/lib/utils/base-worker"
	"recruit-flow-backend/lib/utils/helpers"
	"recruit-flow-backend/models"
)

// StartWorker closes out assignments nobody will finish: started ones whose
// countdown ran out long ago and invites that were never opened.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("AssignmentExpireWorker", 30*time.Second, 10*time.Minute),
		store:    assessmentstore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	store assessmentstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	inviteTTL := time.Duration(config.Conf.Testing.InviteTTLHours) * time.Hour
	list, err := i.store.ListOverdue(time.Now(), inviteTTL)
	if err != nil {
		logger.WithError(err).Error("failed to list overdue assignments")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		err = i.store.UpdateAssignment(rec.ID, map[string]interface{}{
			"Status": models.AssignmentStatusExpired,
		})
		if err != nil {
			logger.
				WithError(err).
				WithField("assignment_id", rec.ID).
				Error("failed to expire assignment")
			continue
		}
		logger.
			WithField("assignment_id", rec.ID).
			WithField("candidate_id", rec.CandidateID).
			Info("assignment expired")
	}
}
