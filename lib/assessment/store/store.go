package assessmentstore

import (
	"time"

	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Save(rec dbmodels.Test) (id string, err error)
	GetByID(id string) (rec *dbmodels.Test, err error)
	List(formID string) ([]dbmodels.Test, error)
	Delete(id string) error

	SaveAssignment(rec dbmodels.TestAssignment) (id string, err error)
	GetAssignment(testID, candidateID string) (rec *dbmodels.TestAssignment, err error)
	GetAssignmentByLink(linkToken string) (rec *dbmodels.TestAssignment, err error)
	ListAssignments(testID string) ([]dbmodels.TestAssignment, error)
	ListCompletedAbove(testID string, cutoff float64) ([]dbmodels.TestAssignment, error)
	ListOverdue(now time.Time, inviteTTL time.Duration) ([]dbmodels.TestAssignment, error)
	UpdateAssignment(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.Test) (id string, err error) {
	// total marks is derived and must follow every question change
	rec.TotalMarks = rec.Questions.TotalMarks()
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Test, error) {
	rec := dbmodels.Test{}
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

func (i impl) List(formID string) (list []dbmodels.Test, err error) {
	list = []dbmodels.Test{}
	tx := i.db.Model(dbmodels.Test{})
	if formID != "" {
		tx = tx.Where("form_id = ?", formID)
	}
	err = tx.Order("created_at").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Test{}).
		Error
}

func (i impl) SaveAssignment(rec dbmodels.TestAssignment) (id string, err error) {
	existed, err := i.GetAssignment(rec.TestID, rec.CandidateID)
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

func (i impl) GetAssignment(testID, candidateID string) (*dbmodels.TestAssignment, error) {
	rec := dbmodels.TestAssignment{}
	err := i.db.
		Preload("Test").
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

func (i impl) GetAssignmentByLink(linkToken string) (*dbmodels.TestAssignment, error) {
	rec := dbmodels.TestAssignment{}
	err := i.db.
		Where("link_token = ?", linkToken).
		Preload("Test").
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

func (i impl) ListAssignments(testID string) (list []dbmodels.TestAssignment, err error) {
	list = []dbmodels.TestAssignment{}
	err = i.db.
		Where("test_id = ?", testID).
		Preload("Candidate").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCompletedAbove(testID string, cutoff float64) (list []dbmodels.TestAssignment, err error) {
	list = []dbmodels.TestAssignment{}
	err = i.db.
		Where("test_id = ?", testID).
		Where("status = ?", models.AssignmentStatusCompleted).
		Where("percentage >= ?", cutoff).
		Preload("Candidate").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListOverdue returns started assignments past their deadline and invited
// ones whose invite is older than the TTL.
func (i impl) ListOverdue(now time.Time, inviteTTL time.Duration) (list []dbmodels.TestAssignment, err error) {
	list = []dbmodels.TestAssignment{}
	err = i.db.
		Joins("join tests as t on test_id = t.id").
		Where(
			i.db.Where("test_assignments.status = ?", models.AssignmentStatusStarted).
				Where("started_at + make_interval(mins => t.duration_min) < ?", now),
		).
		Or(
			i.db.Where("test_assignments.status = ?", models.AssignmentStatusInvited).
				Where("test_assignments.created_at < ?", now.Add(-inviteTTL)),
		).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateAssignment(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.TestAssignment{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("assignment not found")
	}
	return nil
}
