package interviewstore

import (
	"time"

	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	FindOrCreate(formID string, round int, iType models.InterviewType, date time.Time) (rec *dbmodels.Interview, err error)
	GetByID(id string) (rec *dbmodels.Interview, err error)
	List(formID string) ([]dbmodels.Interview, error)
	UpsertCandidate(rec dbmodels.InterviewCandidate) (id string, err error)
	GetCandidate(interviewID, candidateID string) (rec *dbmodels.InterviewCandidate, err error)
	ListCandidates(interviewID string) ([]dbmodels.InterviewCandidate, error)
	UpdateCandidate(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// FindOrCreate resolves the interview of a (form, round, type) triple,
// creating it on first use.
func (i impl) FindOrCreate(formID string, round int, iType models.InterviewType, date time.Time) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Where("form_id = ?", formID).
		Where("round = ?", round).
		Where("type = ?", iType).
		First(&rec).
		Error
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	rec = dbmodels.Interview{
		FormID: formID,
		Round:  round,
		Type:   iType,
		Date:   date,
	}
	err = i.db.Create(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByID(id string) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) List(formID string) (list []dbmodels.Interview, err error) {
	list = []dbmodels.Interview{}
	tx := i.db.Model(dbmodels.Interview{})
	if formID != "" {
		tx = tx.Where("form_id = ?", formID)
	}
	err = tx.Order("date").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpsertCandidate(rec dbmodels.InterviewCandidate) (id string, err error) {
	existed, err := i.GetCandidate(rec.InterviewID, rec.CandidateID)
	if err != nil {
		return "", err
	}
	if existed != nil {
		rec.ID = existed.ID
	}
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetCandidate(interviewID, candidateID string) (*dbmodels.InterviewCandidate, error) {
	rec := dbmodels.InterviewCandidate{}
	err := i.db.
		Where("interview_id = ?", interviewID).
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

func (i impl) ListCandidates(interviewID string) (list []dbmodels.InterviewCandidate, err error) {
	list = []dbmodels.InterviewCandidate{}
	err = i.db.
		Where("interview_id = ?", interviewID).
		Preload("Candidate").
		Order("time_slot").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateCandidate(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.InterviewCandidate{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("scheduled candidate not found")
	}
	return nil
}
