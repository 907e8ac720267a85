package formstore

import (
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Save(rec dbmodels.RecruitmentForm) (id string, err error)
	GetByID(id string) (rec *dbmodels.RecruitmentForm, err error)
	GetByLink(linkToken string) (rec *dbmodels.RecruitmentForm, err error)
	List() ([]dbmodels.RecruitmentForm, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.RecruitmentForm) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.RecruitmentForm, error) {
	rec := dbmodels.RecruitmentForm{}
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

func (i impl) GetByLink(linkToken string) (*dbmodels.RecruitmentForm, error) {
	rec := dbmodels.RecruitmentForm{}
	err := i.db.
		Where("link_token = ?", linkToken).
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

func (i impl) List() (list []dbmodels.RecruitmentForm, err error) {
	list = []dbmodels.RecruitmentForm{}
	err = i.db.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.RecruitmentForm{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("form not found")
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.RecruitmentForm{}).
		Error
}
