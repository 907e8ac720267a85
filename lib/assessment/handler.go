package assessmenthandler

import (
	"fmt"
	"time"

	"recruit-flow-backend/config"
	"recruit-flow-backend/db"
	resultstore "recruit-flow-backend/lib/assessment/result-store"
	"recruit-flow-backend/lib/assessment/scoring"
	assessmentstore "recruit-flow-backend/lib/assessment/store"
	candidatehistoryhandler "recruit-flow-backend/lib/candidate-history"
	candidatestore "recruit-flow-backend/lib/candidate/store"
	interviewstore "recruit-flow-backend/lib/interview/store"
	notificationhandler "recruit-flow-backend/lib/notification"
	"recruit-flow-backend/models"
	testapimodels "recruit-flow-backend/models/api/test"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoAssignment        = errors.New("candidate is not assigned to this test")
	ErrAssignmentCompleted = errors.New("test is already completed")
	ErrAssignmentExpired   = errors.New("test assignment has expired")
	ErrDeadlinePassed      = errors.New("time for the test has run out")
)

type Provider interface {
	Create(request testapimodels.TestData) (id string, err error)
	Update(id string, request testapimodels.TestData) error
	GetByID(id string) (testapimodels.TestView, error)
	List(formID string) ([]testapimodels.TestView, error)
	Delete(id string) error

	AssignCandidates(testID, userID string, request testapimodels.AssignRequest) error
	ListAssignments(testID string) ([]testapimodels.AssignmentView, error)
	TakeByLink(linkToken string) (testapimodels.TakeTestView, error)
	Submit(testID, userID string, request testapimodels.SubmitRequest) (testapimodels.SubmitResult, error)
	SubmitByLink(linkToken string, request testapimodels.SubmitRequest) (testapimodels.SubmitResult, error)

	SuggestNextRound(testID, userID string) (testapimodels.SuggestResult, error)
	ReleaseResults(testID, userID string, request testapimodels.ReleaseRequest) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          assessmentstore.NewInstance(db.DB),
		resultStore:    resultstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
		interviewStore: interviewstore.NewInstance(db.DB),
	}
}

type impl struct {
	store          assessmentstore.Provider
	resultStore    resultstore.Provider
	candidateStore candidatestore.Provider
	interviewStore interviewstore.Provider
}

func (i impl) Create(request testapimodels.TestData) (string, error) {
	rec := dbmodels.Test{
		FormID:            request.FormID,
		Title:             request.Title,
		Description:       request.Description,
		DurationMin:       request.DurationMin,
		PassingPercentage: request.PassingPercentage,
		CutoffPercentage:  request.CutoffPercentage,
		Round:             request.Round,
		Questions:         convertQuestions(request.Questions),
	}
	if rec.Round <= 0 {
		rec.Round = 1
	}
	id, err := i.store.Save(rec)
	if err != nil {
		log.WithField("title", request.Title).WithError(err).Error("failed to create test")
		return "", errors.New("failed to create test")
	}
	log.WithField("test_id", id).Info("test created")
	return id, nil
}

func (i impl) Update(id string, request testapimodels.TestData) error {
	logger := log.WithField("test_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("failed to get test")
		return errors.New("failed to get test")
	}
	if rec == nil {
		return errors.New("test not found")
	}
	rec.FormID = request.FormID
	rec.Title = request.Title
	rec.Description = request.Description
	rec.DurationMin = request.DurationMin
	rec.PassingPercentage = request.PassingPercentage
	rec.CutoffPercentage = request.CutoffPercentage
	if request.Round > 0 {
		rec.Round = request.Round
	}
	rec.Questions = convertQuestions(request.Questions)
	_, err = i.store.Save(*rec)
	if err != nil {
		logger.WithError(err).Error("failed to update test")
		return errors.New("failed to update test")
	}
	return nil
}

func (i impl) GetByID(id string) (testapimodels.TestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("test_id", id).WithError(err).Error("failed to get test")
		return testapimodels.TestView{}, errors.New("failed to get test")
	}
	if rec == nil {
		return testapimodels.TestView{}, errors.New("test not found")
	}
	return testapimodels.TestConvert(*rec), nil
}

func (i impl) List(formID string) ([]testapimodels.TestView, error) {
	list, err := i.store.List(formID)
	if err != nil {
		log.WithField("form_id", formID).WithError(err).Error("failed to list tests")
		return nil, errors.New("failed to list tests")
	}
	result := make([]testapimodels.TestView, 0, len(list))
	for _, rec := range list {
		result = append(result, testapimodels.TestConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(id string) error {
	err := i.store.Delete(id)
	if err != nil {
		log.WithField("test_id", id).WithError(err).Error("failed to delete test")
		return errors.New("failed to delete test")
	}
	return nil
}

// AssignCandidates invites the listed candidates. A candidate already holding
// an assignment for the test is skipped, the invite link stays stable.
func (i impl) AssignCandidates(testID, userID string, request testapimodels.AssignRequest) error {
	logger := log.WithField("test_id", testID)
	testRec, err := i.store.GetByID(testID)
	if err != nil {
		logger.WithError(err).Error("failed to get test")
		return errors.New("failed to get test")
	}
	if testRec == nil {
		return errors.New("test not found")
	}
	for _, candidateID := range request.CandidateIDs {
		cLogger := logger.WithField("candidate_id", candidateID)
		candidateRec, err := i.candidateStore.GetByID(candidateID)
		if err != nil {
			cLogger.WithError(err).Error("failed to get candidate")
			return errors.New("failed to get candidate")
		}
		if candidateRec == nil {
			return errors.Errorf("candidate %v not found", candidateID)
		}
		existed, err := i.store.GetAssignment(testID, candidateID)
		if err != nil {
			cLogger.WithError(err).Error("failed to check assignment")
			return errors.New("failed to assign candidates")
		}
		if existed != nil {
			continue
		}
		rec := dbmodels.TestAssignment{
			TestID:      testID,
			CandidateID: candidateID,
			LinkToken:   uuid.NewString(),
			Status:      models.AssignmentStatusInvited,
		}
		_, err = i.store.SaveAssignment(rec)
		if err != nil {
			cLogger.WithError(err).Error("failed to save assignment")
			return errors.New("failed to assign candidates")
		}

		link := config.Conf.UIParams.TakeTestPath + rec.LinkToken
		body := fmt.Sprintf("Hello %v, you are invited to take the test %q (%v minutes). Follow the link: %v",
			candidateRec.GetFIO(), testRec.Title, testRec.DurationMin, link)
		notificationhandler.Instance.EnqueueEmail(candidateRec.Email, "Test invitation", body)
		notificationhandler.Instance.EnqueueSms(candidateRec.Phone,
			fmt.Sprintf("You are invited to take the test %q: %v", testRec.Title, link))

		candidatehistoryhandler.Instance.Save(candidateID, candidateRec.FormID, userID,
			models.ActionTypeTestAssigned, candidatehistoryhandler.GetTestAssigned(testRec.Title))
		cLogger.Info("candidate assigned to test")
	}
	return nil
}

func (i impl) ListAssignments(testID string) ([]testapimodels.AssignmentView, error) {
	testRec, err := i.store.GetByID(testID)
	if err != nil {
		log.WithField("test_id", testID).WithError(err).Error("failed to get test")
		return nil, errors.New("failed to get test")
	}
	if testRec == nil {
		return nil, errors.New("test not found")
	}
	list, err := i.store.ListAssignments(testID)
	if err != nil {
		log.WithField("test_id", testID).WithError(err).Error("failed to list assignments")
		return nil, errors.New("failed to list assignments")
	}
	cutoff := testRec.EffectiveCutoff()
	result := make([]testapimodels.AssignmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, testapimodels.AssignmentConvert(rec, cutoff))
	}
	return result, nil
}

// TakeByLink serves the test to an invited candidate and starts the countdown
// on first access. Correct answers never leave the server here.
func (i impl) TakeByLink(linkToken string) (testapimodels.TakeTestView, error) {
	logger := log.WithField("link_token", linkToken)
	rec, err := i.store.GetAssignmentByLink(linkToken)
	if err != nil {
		logger.WithError(err).Error("failed to get assignment by link")
		return testapimodels.TakeTestView{}, errors.New("failed to get assignment")
	}
	if rec == nil || rec.Test == nil {
		return testapimodels.TakeTestView{}, ErrNoAssignment
	}
	switch rec.Status {
	case models.AssignmentStatusCompleted:
		return testapimodels.TakeTestView{}, ErrAssignmentCompleted
	case models.AssignmentStatusExpired:
		return testapimodels.TakeTestView{}, ErrAssignmentExpired
	case models.AssignmentStatusInvited:
		now := time.Now()
		err = i.store.UpdateAssignment(rec.ID, map[string]interface{}{
			"Status":    models.AssignmentStatusStarted,
			"StartedAt": now,
		})
		if err != nil {
			logger.WithError(err).Error("failed to start assignment")
			return testapimodels.TakeTestView{}, errors.New("failed to start the test")
		}
		rec.Status = models.AssignmentStatusStarted
		rec.StartedAt = &now
	case models.AssignmentStatusStarted:
		if i.deadlinePassed(*rec) {
			i.expire(rec.ID)
			return testapimodels.TakeTestView{}, ErrDeadlinePassed
		}
	}
	return testapimodels.TakeTestConvert(*rec.Test, *rec), nil
}

func (i impl) Submit(testID, userID string, request testapimodels.SubmitRequest) (testapimodels.SubmitResult, error) {
	candidateRec, err := i.candidateStore.GetByUserID(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("failed to get candidate by user")
		return testapimodels.SubmitResult{}, errors.New("failed to submit the test")
	}
	if candidateRec == nil {
		return testapimodels.SubmitResult{}, ErrNoAssignment
	}
	rec, err := i.store.GetAssignment(testID, candidateRec.ID)
	if err != nil {
		log.WithField("test_id", testID).WithError(err).Error("failed to get assignment")
		return testapimodels.SubmitResult{}, errors.New("failed to submit the test")
	}
	if rec == nil {
		return testapimodels.SubmitResult{}, ErrNoAssignment
	}
	return i.submit(*rec, request)
}

func (i impl) SubmitByLink(linkToken string, request testapimodels.SubmitRequest) (testapimodels.SubmitResult, error) {
	rec, err := i.store.GetAssignmentByLink(linkToken)
	if err != nil {
		log.WithField("link_token", linkToken).WithError(err).Error("failed to get assignment by link")
		return testapimodels.SubmitResult{}, errors.New("failed to submit the test")
	}
	if rec == nil {
		return testapimodels.SubmitResult{}, ErrNoAssignment
	}
	return i.submit(*rec, request)
}

func (i impl) submit(assignment dbmodels.TestAssignment, request testapimodels.SubmitRequest) (testapimodels.SubmitResult, error) {
	logger := log.
		WithField("test_id", assignment.TestID).
		WithField("candidate_id", assignment.CandidateID)
	if err := submitBlocked(assignment); err != nil {
		return testapimodels.SubmitResult{}, err
	}
	if assignment.Status != models.AssignmentStatusCompleted && i.deadlinePassed(assignment) {
		i.expire(assignment.ID)
		return testapimodels.SubmitResult{}, ErrDeadlinePassed
	}
	testRec, err := i.store.GetByID(assignment.TestID)
	if err != nil {
		logger.WithError(err).Error("failed to get test")
		return testapimodels.SubmitResult{}, errors.New("failed to submit the test")
	}
	if testRec == nil {
		return testapimodels.SubmitResult{}, errors.New("test not found")
	}

	answers := make([]scoring.SubmittedAnswer, 0, len(request.Answers))
	for _, a := range request.Answers {
		answers = append(answers, scoring.SubmittedAnswer{
			QuestionID:   a.QuestionID,
			Answer:       a.Answer,
			TimeTakenSec: a.TimeTakenSec,
			AnsweredAt:   a.AnsweredAt,
		})
	}
	outcome := scoring.GradeSubmission(*testRec, answers)

	status := resultStatus(outcome)
	now := time.Now()
	result := dbmodels.TestResult{
		TestID:      assignment.TestID,
		CandidateID: assignment.CandidateID,
		Score:       outcome.Score,
		TotalScore:  outcome.TotalMarks,
		Percentage:  outcome.Percentage,
		Passed:      outcome.Passed,
		Status:      status,
		Answers:     dbmodels.ResultAnswers{Answers: outcome.Answers},
		SubmittedAt: now,
	}

	// the row lock serializes concurrent submits of the same assignment;
	// a repeated submission regrades and overwrites the previous outcome
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		locked := dbmodels.TestAssignment{}
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", assignment.ID).
			First(&locked).
			Error
		if err != nil {
			return err
		}
		err = tx.
			Model(&dbmodels.TestAssignment{}).
			Where("id = ?", assignment.ID).
			Updates(map[string]interface{}{
				"Status":      models.AssignmentStatusCompleted,
				"CompletedAt": now,
				"Score":       outcome.Score,
				"Percentage":  outcome.Percentage,
			}).
			Error
		if err != nil {
			return err
		}
		_, err = i.resultStore.Upsert(tx, result)
		return err
	})
	if err != nil {
		logger.WithError(err).Error("failed to persist submission")
		return testapimodels.SubmitResult{}, errors.New("failed to submit the test")
	}

	candidatehistoryhandler.Instance.Save(assignment.CandidateID, testRec.FormID, "",
		models.ActionTypeTestSubmitted,
		candidatehistoryhandler.GetTestSubmitted(testRec.Title, outcome.Score, outcome.TotalMarks, outcome.Percentage))

	logger.
		WithField("score", outcome.Score).
		WithField("percentage", outcome.Percentage).
		Info("test submitted")
	return testapimodels.SubmitResult{
		Score:      outcome.Score,
		TotalScore: outcome.TotalMarks,
		Percentage: outcome.Percentage,
		Passed:     outcome.Passed,
		Status:     status,
	}, nil
}

// SuggestNextRound shortlists every candidate whose completed assignment
// cleared the advancement cutoff. Safe to call repeatedly.
func (i impl) SuggestNextRound(testID, userID string) (testapimodels.SuggestResult, error) {
	logger := log.WithField("test_id", testID)
	testRec, err := i.store.GetByID(testID)
	if err != nil {
		logger.WithError(err).Error("failed to get test")
		return testapimodels.SuggestResult{}, errors.New("failed to get test")
	}
	if testRec == nil {
		return testapimodels.SuggestResult{}, errors.New("test not found")
	}
	list, err := i.store.ListCompletedAbove(testID, testRec.EffectiveCutoff())
	if err != nil {
		logger.WithError(err).Error("failed to list passing assignments")
		return testapimodels.SuggestResult{}, errors.New("failed to suggest candidates")
	}
	result := testapimodels.SuggestResult{}
	for _, rec := range list {
		if rec.Candidate == nil {
			continue
		}
		allowed, err := rec.Candidate.IsAllowStatusChange(models.CandidateStatusShortlisted)
		if err != nil || !allowed {
			// already shortlisted or out of the pipeline
			continue
		}
		err = i.candidateStore.Update(rec.CandidateID, map[string]interface{}{
			"Status": models.CandidateStatusShortlisted,
		})
		if err != nil {
			logger.WithField("candidate_id", rec.CandidateID).WithError(err).Error("failed to shortlist candidate")
			return testapimodels.SuggestResult{}, errors.New("failed to suggest candidates")
		}
		candidatehistoryhandler.Instance.Save(rec.CandidateID, rec.Candidate.FormID, userID,
			models.ActionTypeStatusChange,
			candidatehistoryhandler.GetStatusChange(rec.Candidate.Status, models.CandidateStatusShortlisted, ""))
		result.Suggested++
	}
	logger.WithField("suggested", result.Suggested).Info("next round suggestion done")
	return result, nil
}

// ReleaseResults is the admin's verdict on one candidate's test outcome.
// Notification problems are logged, the verdict itself always lands.
func (i impl) ReleaseResults(testID, userID string, request testapimodels.ReleaseRequest) error {
	logger := log.
		WithField("test_id", testID).
		WithField("candidate_id", request.CandidateID)
	testRec, err := i.store.GetByID(testID)
	if err != nil {
		logger.WithError(err).Error("failed to get test")
		return errors.New("failed to get test")
	}
	if testRec == nil {
		return errors.New("test not found")
	}
	candidateRec, err := i.candidateStore.GetByID(request.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get candidate")
		return errors.New("failed to get candidate")
	}
	if candidateRec == nil {
		return errors.New("candidate not found")
	}
	assignment, err := i.store.GetAssignment(testID, request.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get assignment")
		return errors.New("failed to release results")
	}
	if assignment == nil {
		return ErrNoAssignment
	}

	if request.Promote {
		err = i.promote(*testRec, *candidateRec, userID, request)
	} else {
		err = i.reject(*candidateRec, userID, request)
	}
	if err != nil {
		return err
	}

	// the released verdict lands on the result record
	verdict := models.TestResultStatusFailed
	if request.Promote {
		verdict = models.TestResultStatusPassed
	}
	err = i.resultStore.UpdateStatus(testID, request.CandidateID, verdict)
	if err != nil {
		logger.WithError(err).Error("failed to update result status")
		return errors.New("failed to release results")
	}

	candidatehistoryhandler.Instance.Save(candidateRec.ID, candidateRec.FormID, userID,
		models.ActionTypeResultReleased,
		candidatehistoryhandler.GetResultReleased(testRec.Title, request.Promote))
	logger.WithField("promote", request.Promote).Info("test results released")
	return nil
}

func (i impl) promote(testRec dbmodels.Test, candidateRec dbmodels.Candidate, userID string, request testapimodels.ReleaseRequest) error {
	logger := log.WithField("candidate_id", candidateRec.ID)
	allowed, err := candidateRec.IsAllowStatusChange(models.CandidateStatusShortlisted)
	if err != nil {
		return err
	}
	if allowed {
		err = i.candidateStore.Update(candidateRec.ID, map[string]interface{}{
			"Status": models.CandidateStatusShortlisted,
		})
		if err != nil {
			logger.WithError(err).Error("failed to shortlist candidate")
			return errors.New("failed to release results")
		}
	}

	body := fmt.Sprintf("Hello %v, congratulations! You have cleared the test %q.",
		candidateRec.GetFIO(), testRec.Title)
	if request.InterviewDate != nil {
		iType := request.InterviewType
		if iType == "" {
			iType = models.InterviewTypeTechnical
		}
		interviewRec, err := i.interviewStore.FindOrCreate(testRec.FormID, testRec.Round, iType, *request.InterviewDate)
		if err != nil {
			logger.WithError(err).Error("failed to schedule interview")
			return errors.New("failed to schedule interview")
		}
		_, err = i.interviewStore.UpsertCandidate(dbmodels.InterviewCandidate{
			InterviewID: interviewRec.ID,
			CandidateID: candidateRec.ID,
			Status:      models.InterviewCandidateScheduled,
			TimeSlot:    request.InterviewTime,
		})
		if err != nil {
			logger.WithError(err).Error("failed to add candidate to interview")
			return errors.New("failed to schedule interview")
		}
		body = fmt.Sprintf("%v Your %v interview is scheduled for %v %v.",
			body, iType, request.InterviewDate.Format("02.01.2006"), request.InterviewTime)
		candidatehistoryhandler.Instance.Save(candidateRec.ID, candidateRec.FormID, userID,
			models.ActionTypeInterviewSet,
			candidatehistoryhandler.GetInterviewScheduled(iType, request.InterviewDate.Format("02.01.2006"), request.InterviewTime))
	}
	notificationhandler.Instance.EnqueueEmail(candidateRec.Email, "Test results", body)
	notificationhandler.Instance.EnqueuePush(candidateRec.UserID, "Test results", body)
	return nil
}

func (i impl) reject(candidateRec dbmodels.Candidate, userID string, request testapimodels.ReleaseRequest) error {
	logger := log.WithField("candidate_id", candidateRec.ID)
	reason := request.RejectReason
	if reason == "" {
		reason = "test results below the bar"
	}
	allowed, err := candidateRec.IsAllowStatusChange(models.CandidateStatusRejected)
	if err != nil {
		return err
	}
	if allowed {
		err = i.candidateStore.Update(candidateRec.ID, map[string]interface{}{
			"Status":       models.CandidateStatusRejected,
			"RejectReason": reason,
		})
		if err != nil {
			logger.WithError(err).Error("failed to reject candidate")
			return errors.New("failed to release results")
		}
	}
	body := fmt.Sprintf("Hello %v, unfortunately we will not be moving forward with your application.",
		candidateRec.GetFIO())
	notificationhandler.Instance.EnqueueEmail(candidateRec.Email, "Test results", body)
	notificationhandler.Instance.EnqueuePush(candidateRec.UserID, "Test results", body)
	return nil
}

// submitBlocked rejects only expired assignments. A completed one may be
// submitted again: regrading overwrites the stored outcome, so a client
// retry of the same payload lands on the same state.
func submitBlocked(assignment dbmodels.TestAssignment) error {
	if assignment.Status == models.AssignmentStatusExpired {
		return ErrAssignmentExpired
	}
	return nil
}

// resultStatus is the post-submission lifecycle state: pending while any
// answer awaits manual grading, completed once fully auto-graded. The
// passed/failed verdict is stamped later by ReleaseResults.
func resultStatus(outcome scoring.Outcome) models.TestResultStatus {
	if outcome.PendingManual > 0 {
		return models.TestResultStatusPending
	}
	return models.TestResultStatusCompleted
}

func (i impl) deadlinePassed(assignment dbmodels.TestAssignment) bool {
	if config.Conf.Testing.EnforceDeadline == nil || !*config.Conf.Testing.EnforceDeadline {
		return false
	}
	if assignment.StartedAt == nil || assignment.Test == nil {
		return false
	}
	duration := time.Duration(assignment.Test.DurationMin) * time.Minute
	grace := time.Duration(config.Conf.Testing.DeadlineGraceSec) * time.Second
	deadline := assignment.Deadline(duration, grace)
	return deadline != nil && time.Now().After(*deadline)
}

func (i impl) expire(assignmentID string) {
	err := i.store.UpdateAssignment(assignmentID, map[string]interface{}{
		"Status": models.AssignmentStatusExpired,
	})
	if err != nil {
		log.WithField("assignment_id", assignmentID).WithError(err).Error("failed to expire assignment")
	}
}

func convertQuestions(questions []testapimodels.QuestionData) dbmodels.TestQuestions {
	result := dbmodels.TestQuestions{
		Questions: make([]dbmodels.TestQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		rec := dbmodels.TestQuestion{
			ID:            q.ID,
			Text:          q.Text,
			Type:          q.Type,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		result.Questions = append(result.Questions, rec)
	}
	return result
}
