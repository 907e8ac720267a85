package candidatestore

import (
	"strings"

	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	GetByUserID(userID string) (rec *dbmodels.Candidate, err error)
	List(filter dbmodels.CandidateFilter, page, limit int) ([]dbmodels.Candidate, error)
	ListCount(filter dbmodels.CandidateFilter) (int64, error)
	CountByStatus(formID string) (map[string]int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("candidate not found")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Where("id = ?", id).
		Preload(clause.Associations).
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

func (i impl) GetByUserID(userID string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Where("user_id = ?", userID).
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

func (i impl) List(filter dbmodels.CandidateFilter, page, limit int) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.Model(dbmodels.Candidate{})
	i.addFilter(tx, filter)
	offset := (page - 1) * limit
	err = tx.
		Preload("Form").
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

func (i impl) ListCount(filter dbmodels.CandidateFilter) (count int64, err error) {
	tx := i.db.Model(dbmodels.Candidate{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	return count, err
}

func (i impl) CountByStatus(formID string) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	rows := []row{}
	tx := i.db.
		Model(dbmodels.Candidate{}).
		Select("status, count(*) as count").
		Group("status")
	if formID != "" {
		tx = tx.Where("form_id = ?", formID)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Count
	}
	return result, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.CandidateFilter) {
	if filter.FormID != "" {
		tx.Where("form_id = ?", filter.FormID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(CONCAT(last_name,' ', first_name)) like ? or phone like ? or LOWER(email) like ?", searchValue, searchValue, searchValue)
	}
}
