package formhandler

import (
	"fmt"

	"recruit-flow-backend/db"
	candidatehistoryhandler "recruit-flow-backend/lib/candidate-history"
	candidatestore "recruit-flow-backend/lib/candidate/store"
	formstore "recruit-flow-backend/lib/form/store"
	notificationhandler "recruit-flow-backend/lib/notification"
	userstore "recruit-flow-backend/lib/user/store"
	"recruit-flow-backend/models"
	formapimodels "recruit-flow-backend/models/api/form"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Provider interface {
	Create(request formapimodels.FormData) (id string, err error)
	Update(id string, request formapimodels.FormData) error
	GetByID(id string) (formapimodels.FormView, error)
	List() ([]formapimodels.FormView, error)
	Delete(id string) error
	GetPublicByLink(linkToken string) (formapimodels.PublicFormView, error)
	Apply(linkToken string, request formapimodels.ApplyRequest) (candidateID string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          formstore.NewInstance(db.DB),
		userStore:      userstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store          formstore.Provider
	userStore      userstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) Create(request formapimodels.FormData) (string, error) {
	rec := dbmodels.RecruitmentForm{
		Title:       request.Title,
		Description: request.Description,
		LinkToken:   uuid.NewString(),
		IsOpen:      request.IsOpen,
		Fields:      dbmodels.FormFields{Fields: request.Fields},
	}
	id, err := i.store.Save(rec)
	if err != nil {
		log.WithField("title", request.Title).WithError(err).Error("failed to create recruitment form")
		return "", errors.New("failed to create recruitment form")
	}
	log.WithField("form_id", id).Info("recruitment form created")
	return id, nil
}

func (i impl) Update(id string, request formapimodels.FormData) error {
	logger := log.WithField("form_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("failed to get recruitment form")
		return errors.New("failed to get recruitment form")
	}
	if rec == nil {
		return errors.New("recruitment form not found")
	}
	updMap := map[string]interface{}{
		"Title":       request.Title,
		"Description": request.Description,
		"IsOpen":      request.IsOpen,
		"Fields":      dbmodels.FormFields{Fields: request.Fields},
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update recruitment form")
		return errors.New("failed to update recruitment form")
	}
	return nil
}

func (i impl) GetByID(id string) (formapimodels.FormView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("form_id", id).WithError(err).Error("failed to get recruitment form")
		return formapimodels.FormView{}, errors.New("failed to get recruitment form")
	}
	if rec == nil {
		return formapimodels.FormView{}, errors.New("recruitment form not found")
	}
	return formapimodels.Convert(*rec), nil
}

func (i impl) List() ([]formapimodels.FormView, error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("failed to list recruitment forms")
		return nil, errors.New("failed to list recruitment forms")
	}
	result := make([]formapimodels.FormView, 0, len(list))
	for _, rec := range list {
		result = append(result, formapimodels.Convert(rec))
	}
	return result, nil
}

func (i impl) Delete(id string) error {
	err := i.store.Delete(id)
	if err != nil {
		log.WithField("form_id", id).WithError(err).Error("failed to delete recruitment form")
		return errors.New("failed to delete recruitment form")
	}
	return nil
}

func (i impl) GetPublicByLink(linkToken string) (formapimodels.PublicFormView, error) {
	rec, err := i.getOpenByLink(linkToken)
	if err != nil {
		return formapimodels.PublicFormView{}, err
	}
	return formapimodels.PublicConvert(*rec), nil
}

// Apply registers the applicant as a candidate user and puts them at the
// start of the pipeline. Reapplying with a known email is rejected.
func (i impl) Apply(linkToken string, request formapimodels.ApplyRequest) (string, error) {
	logger := log.WithField("link_token", linkToken).WithField("email", request.Email)
	formRec, err := i.getOpenByLink(linkToken)
	if err != nil {
		return "", err
	}
	for _, f := range formRec.Fields.Fields {
		if f.Required && request.Values[f.Name] == "" {
			return "", errors.Errorf("required field %q is not filled", f.Label)
		}
	}
	existUser, err := i.userStore.GetByEmail(request.Email)
	if err != nil {
		logger.WithError(err).Error("failed to check applicant email")
		return "", errors.New("failed to submit application")
	}
	if existUser != nil {
		exist, cErr := i.candidateStore.GetByUserID(existUser.ID)
		if cErr != nil {
			logger.WithError(cErr).Error("failed to check existing candidate")
			return "", errors.New("failed to submit application")
		}
		if exist != nil {
			return "", errors.New("an application with this email already exists")
		}
	}

	// first access password, the candidate can change it after logging in
	rawPassword := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("failed to hash candidate password")
		return "", errors.New("failed to submit application")
	}

	var candidateID string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		userID := ""
		if existUser != nil {
			userID = existUser.ID
		} else {
			user := dbmodels.User{
				Email:        request.Email,
				PasswordHash: string(hash),
				FirstName:    request.FirstName,
				LastName:     request.LastName,
				Phone:        request.Phone,
				Role:         models.UserRoleCandidate,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			userID = user.ID
		}
		candidate := dbmodels.Candidate{
			UserID:    userID,
			FormID:    formRec.ID,
			Status:    models.CandidateStatusPending,
			FirstName: request.FirstName,
			LastName:  request.LastName,
			Phone:     request.Phone,
			Email:     request.Email,
			Profile:   dbmodels.CandidateProfile{Values: request.Values},
		}
		if err := tx.Create(&candidate).Error; err != nil {
			return err
		}
		candidateID = candidate.ID
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("failed to save application")
		return "", errors.New("failed to submit application")
	}

	candidatehistoryhandler.Instance.Save(candidateID, formRec.ID, "", models.ActionTypeApplied,
		candidatehistoryhandler.GetAppliedChanges(formRec.Title))

	body := fmt.Sprintf("Hello %v, we have received your application for %q. We will get back to you after the review.",
		request.FirstName, formRec.Title)
	notificationhandler.Instance.EnqueueEmail(request.Email, "Application received", body)

	logger.WithField("candidate_id", candidateID).Info("application submitted")
	return candidateID, nil
}

func (i impl) getOpenByLink(linkToken string) (*dbmodels.RecruitmentForm, error) {
	rec, err := i.store.GetByLink(linkToken)
	if err != nil {
		log.WithField("link_token", linkToken).WithError(err).Error("failed to get recruitment form by link")
		return nil, errors.New("failed to get recruitment form")
	}
	if rec == nil {
		return nil, errors.New("recruitment form not found")
	}
	if !rec.IsOpen {
		return nil, errors.New("recruitment form is closed")
	}
	return rec, nil
}
