package candidatehistoryhandler

import (
	"recruit-flow-backend/db"
	candidatehistorystore "recruit-flow-backend/lib/candidate-history/store"
	candidatestore "recruit-flow-backend/lib/candidate/store"
	userstore "recruit-flow-backend/lib/user/store"
	"recruit-flow-backend/models"
	candidateapimodels "recruit-flow-backend/models/api/candidate"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(candidateID string, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64, error)
	Save(candidateID, formID, userID string, action models.ActionType, changes dbmodels.CandidateChanges)
	SaveNote(candidateID, userID string, note candidateapimodels.NoteRequest) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          candidatehistorystore.NewInstance(db.DB),
		userStore:      userstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store          candidatehistorystore.Provider
	userStore      userstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) List(candidateID string, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64, error) {
	rowCount, err := i.store.ListCount(candidateID, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []candidateapimodels.HistoryView{}, rowCount, nil
	}

	list, err := i.store.List(candidateID, filter)
	if err != nil {
		log.WithError(err).Error("failed to list candidate history")
		return nil, 0, errors.New("failed to list candidate history")
	}
	result := make([]candidateapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.HistoryConvert(rec))
	}
	return result, rowCount, nil
}

// Save is best effort, a history write never fails the caller's operation.
func (i impl) Save(candidateID, formID, userID string, action models.ActionType, changes dbmodels.CandidateChanges) {
	logger := log.WithField("candidate_id", candidateID).
		WithField("form_id", formID).
		WithField("action", action).
		WithField("description", changes.Description)
	rec := dbmodels.CandidateHistory{
		CandidateID: candidateID,
		FormID:      formID,
		ActionType:  action,
		Changes:     changes,
	}
	if userID != "" {
		rec.UserID = &userID
		user, err := i.userStore.GetByID(userID)
		if err != nil {
			logger.WithError(err).Error("failed to save candidate history, could not load the acting user")
			return
		}
		if user == nil {
			logger.Error("failed to save candidate history, acting user not found")
			return
		}
		rec.UserName = user.GetFIO()
	} else {
		rec.UserName = models.SystemUser
	}
	_, err := i.store.Save(rec)
	if err != nil {
		logger.WithError(err).Error("failed to save candidate history")
	}
}

func (i impl) SaveNote(candidateID, userID string, note candidateapimodels.NoteRequest) error {
	logger := log.WithField("candidate_id", candidateID).
		WithField("action", models.ActionTypeNote)

	candidateRec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get candidate")
		return errors.New("failed to get candidate")
	}
	if candidateRec == nil {
		return errors.New("candidate not found")
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("failed to save note, could not load the author")
		return errors.New("failed to save note, could not load the author")
	}
	if user == nil {
		return errors.New("note author not found")
	}

	rec := dbmodels.CandidateHistory{
		CandidateID: candidateID,
		FormID:      candidateRec.FormID,
		UserID:      &userID,
		UserName:    user.GetFIO(),
		ActionType:  models.ActionTypeNote,
		Changes:     dbmodels.CandidateChanges{Description: note.Note},
	}
	_, err = i.store.Save(rec)
	if err != nil {
		logger.WithError(err).Error("failed to save note")
		return errors.New("failed to save note")
	}
	return nil
}
