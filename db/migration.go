package db

import (
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	for _, model := range []interface{}{
		&dbmodels.User{},
		&dbmodels.RecruitmentForm{},
		&dbmodels.Candidate{},
		&dbmodels.CandidateHistory{},
		&dbmodels.Test{},
		&dbmodels.TestAssignment{},
		&dbmodels.TestResult{},
		&dbmodels.Interview{},
		&dbmodels.InterviewCandidate{},
		&dbmodels.Notification{},
		&dbmodels.FileStorage{},
	} {
		if err := DB.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "migration failed for %T", model)
		}
	}
	log.Info("migrations finished")
	return nil
}
