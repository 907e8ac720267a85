package candidatehistorystore

import (
	candidateapimodels "recruit-flow-backend/models/api/candidate"
	dbmodels "recruit-flow-backend/models/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Save(rec dbmodels.CandidateHistory) (id string, err error)
	List(candidateID string, filter candidateapimodels.HistoryFilter) ([]dbmodels.CandidateHistory, error)
	ListCount(candidateID string, filter candidateapimodels.HistoryFilter) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.CandidateHistory) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(candidateID string, filter candidateapimodels.HistoryFilter) (list []dbmodels.CandidateHistory, err error) {
	list = []dbmodels.CandidateHistory{}
	tx := i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("candidate_id = ?", candidateID)
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(candidateID string, filter candidateapimodels.HistoryFilter) (count int64, err error) {
	tx := i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("candidate_id = ?", candidateID)
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	return count, err
}

func (i impl) addFilter(tx *gorm.DB, filter candidateapimodels.HistoryFilter) {
	if filter.ActionType != "" {
		tx.Where("action_type = ?", filter.ActionType)
	}
}
