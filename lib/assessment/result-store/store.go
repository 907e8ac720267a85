package resultstore

import (
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Upsert(tx *gorm.DB, rec dbmodels.TestResult) (id string, err error)
	UpdateStatus(testID, candidateID string, status models.TestResultStatus) error
	GetByTestAndCandidate(testID, candidateID string) (rec *dbmodels.TestResult, err error)
	ListByCandidate(candidateID string) ([]dbmodels.TestResult, error)
	ListByTest(testID string) ([]dbmodels.TestResult, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Upsert keeps exactly one result per (test, candidate) pair: a resubmission
// overwrites the previous outcome. Runs on the supplied transaction so the
// caller can pair it with the assignment update atomically.
func (i impl) Upsert(tx *gorm.DB, rec dbmodels.TestResult) (id string, err error) {
	if tx == nil {
		tx = i.db
	}
	existed := dbmodels.TestResult{}
	err = tx.
		Where("test_id = ?", rec.TestID).
		Where("candidate_id = ?", rec.CandidateID).
		First(&existed).
		Error
	if err == nil {
		rec.ID = existed.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	err = tx.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) UpdateStatus(testID, candidateID string, status models.TestResultStatus) error {
	return i.db.
		Model(&dbmodels.TestResult{}).
		Where("test_id = ?", testID).
		Where("candidate_id = ?", candidateID).
		Update("Status", status).
		Error
}

func (i impl) GetByTestAndCandidate(testID, candidateID string) (*dbmodels.TestResult, error) {
	rec := dbmodels.TestResult{}
	err := i.db.
		Where("test_id = ?", testID).
		Where("candidate_id = ?", candidateID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByCandidate(candidateID string) (list []dbmodels.TestResult, err error) {
	list = []dbmodels.TestResult{}
	err = i.db.
		Preload("Test").
		Where("candidate_id = ?", candidateID).
		Order("submitted_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByTest(testID string) (list []dbmodels.TestResult, err error) {
	list = []dbmodels.TestResult{}
	err = i.db.
		Where("test_id = ?", testID).
		Preload("Candidate").
		Order("submitted_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
