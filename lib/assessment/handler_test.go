package assessmenthandler

import (
	"testing"

	resultstore "recruit-flow-backend/lib/assessment/result-store"
	"recruit-flow-backend/lib/assessment/scoring"
	assessmentstore "recruit-flow-backend/lib/assessment/store"
	candidatehistoryhandler "recruit-flow-backend/lib/candidate-history"
	candidatestore "recruit-flow-backend/lib/candidate/store"
	notificationhandler "recruit-flow-backend/lib/notification"
	"recruit-flow-backend/models"
	candidateapimodels "recruit-flow-backend/models/api/candidate"
	testapimodels "recruit-flow-backend/models/api/test"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	assessmentstore.Provider
	test       *dbmodels.Test
	assignment *dbmodels.TestAssignment
	completed  []dbmodels.TestAssignment
	usedCutoff float64
}

func (f *fakeStore) GetByID(id string) (*dbmodels.Test, error) {
	return f.test, nil
}

func (f *fakeStore) GetAssignment(testID, candidateID string) (*dbmodels.TestAssignment, error) {
	return f.assignment, nil
}

func (f *fakeStore) ListCompletedAbove(testID string, cutoff float64) ([]dbmodels.TestAssignment, error) {
	f.usedCutoff = cutoff
	return f.completed, nil
}

type fakeCandidateStore struct {
	candidatestore.Provider
	candidate *dbmodels.Candidate
	updated   []string
}

func (f *fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) {
	return f.candidate, nil
}

func (f *fakeCandidateStore) Update(id string, updMap map[string]interface{}) error {
	f.updated = append(f.updated, id)
	return nil
}

type fakeResultStore struct {
	resultstore.Provider
	statuses map[string]models.TestResultStatus
}

func (f *fakeResultStore) UpdateStatus(testID, candidateID string, status models.TestResultStatus) error {
	if f.statuses == nil {
		f.statuses = map[string]models.TestResultStatus{}
	}
	f.statuses[testID+"/"+candidateID] = status
	return nil
}

type fakeNotifications struct{}

func (fakeNotifications) EnqueueEmail(email, subject, body string) {}

func (fakeNotifications) EnqueueSms(phone, body string) {}

func (fakeNotifications) EnqueuePush(userID, subject, body string) {}

type fakeHistory struct{}

func (fakeHistory) List(candidateID string, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64, error) {
	return nil, 0, nil
}
func (fakeHistory) Save(candidateID, formID, userID string, action models.ActionType, changes dbmodels.CandidateChanges) {
}
func (fakeHistory) SaveNote(candidateID, userID string, note candidateapimodels.NoteRequest) error {
	return nil
}

func completedAssignment(candidateID string, status models.CandidateStatus) dbmodels.TestAssignment {
	return dbmodels.TestAssignment{
		CandidateID: candidateID,
		Candidate: &dbmodels.Candidate{
			BaseModel: dbmodels.BaseModel{ID: candidateID},
			Status:    status,
		},
	}
}

func TestSuggestNextRound(t *testing.T) {
	candidatehistoryhandler.Instance = fakeHistory{}

	t.Run(`cutoff falls back to passing percentage`, func(t *testing.T) {
		store := &fakeStore{test: &dbmodels.Test{PassingPercentage: 40}}
		h := impl{store: store, candidateStore: &fakeCandidateStore{}}
		_, err := h.SuggestNextRound("t1", "u1")
		require.Nil(t, err)
		require.Equal(t, 40.0, store.usedCutoff)
	})

	t.Run(`explicit cutoff wins over passing percentage`, func(t *testing.T) {
		cutoff := 70.0
		store := &fakeStore{test: &dbmodels.Test{PassingPercentage: 40, CutoffPercentage: &cutoff}}
		h := impl{store: store, candidateStore: &fakeCandidateStore{}}
		_, err := h.SuggestNextRound("t1", "u1")
		require.Nil(t, err)
		require.Equal(t, 70.0, store.usedCutoff)
	})

	t.Run(`only movable candidates are shortlisted`, func(t *testing.T) {
		store := &fakeStore{
			test: &dbmodels.Test{PassingPercentage: 40},
			completed: []dbmodels.TestAssignment{
				completedAssignment("c-pending", models.CandidateStatusPending),
				completedAssignment("c-approved", models.CandidateStatusApproved),
				completedAssignment("c-shortlisted", models.CandidateStatusShortlisted),
				completedAssignment("c-rejected", models.CandidateStatusRejected),
				{CandidateID: "c-orphan"},
			},
		}
		candidates := &fakeCandidateStore{}
		h := impl{store: store, candidateStore: candidates}
		result, err := h.SuggestNextRound("t1", "u1")
		require.Nil(t, err)
		require.Equal(t, 2, result.Suggested)
		require.Equal(t, []string{"c-pending", "c-approved"}, candidates.updated)
	})

	t.Run(`repeat call suggests nothing new`, func(t *testing.T) {
		store := &fakeStore{
			test: &dbmodels.Test{PassingPercentage: 40},
			completed: []dbmodels.TestAssignment{
				completedAssignment("c1", models.CandidateStatusShortlisted),
			},
		}
		candidates := &fakeCandidateStore{}
		h := impl{store: store, candidateStore: candidates}
		result, err := h.SuggestNextRound("t1", "u1")
		require.Nil(t, err)
		require.Equal(t, 0, result.Suggested)
		require.Equal(t, 0, len(candidates.updated))
	})

	t.Run(`missing test is an error`, func(t *testing.T) {
		h := impl{store: &fakeStore{}, candidateStore: &fakeCandidateStore{}}
		_, err := h.SuggestNextRound("t1", "u1")
		require.NotNil(t, err)
	})
}

func TestSubmitBlocked(t *testing.T) {
	t.Run(`completed assignment is regraded, not rejected`, func(t *testing.T) {
		rec := dbmodels.TestAssignment{Status: models.AssignmentStatusCompleted}
		require.Nil(t, submitBlocked(rec))
	})

	t.Run(`invited and started may submit`, func(t *testing.T) {
		for _, status := range []models.AssignmentStatus{
			models.AssignmentStatusInvited,
			models.AssignmentStatusStarted,
		} {
			rec := dbmodels.TestAssignment{Status: status}
			require.Nil(t, submitBlocked(rec))
		}
	})

	t.Run(`expired assignment is rejected`, func(t *testing.T) {
		rec := dbmodels.TestAssignment{Status: models.AssignmentStatusExpired}
		require.ErrorIs(t, submitBlocked(rec), ErrAssignmentExpired)
	})
}

func TestReleaseResults(t *testing.T) {
	candidatehistoryhandler.Instance = fakeHistory{}
	notificationhandler.Instance = fakeNotifications{}

	release := func(promote bool) (*fakeResultStore, *fakeCandidateStore, error) {
		results := &fakeResultStore{}
		candidates := &fakeCandidateStore{
			candidate: &dbmodels.Candidate{
				BaseModel: dbmodels.BaseModel{ID: "c1"},
				Status:    models.CandidateStatusApproved,
			},
		}
		h := impl{
			store: &fakeStore{
				test:       &dbmodels.Test{PassingPercentage: 40},
				assignment: &dbmodels.TestAssignment{Status: models.AssignmentStatusCompleted},
			},
			resultStore:    results,
			candidateStore: candidates,
		}
		err := h.ReleaseResults("t1", "u1", testapimodels.ReleaseRequest{CandidateID: "c1", Promote: promote})
		return results, candidates, err
	}

	t.Run(`promotion stamps the result passed and shortlists`, func(t *testing.T) {
		results, candidates, err := release(true)
		require.Nil(t, err)
		require.Equal(t, models.TestResultStatusPassed, results.statuses["t1/c1"])
		require.Equal(t, []string{"c1"}, candidates.updated)
	})

	t.Run(`rejection stamps the result failed`, func(t *testing.T) {
		results, _, err := release(false)
		require.Nil(t, err)
		require.Equal(t, models.TestResultStatusFailed, results.statuses["t1/c1"])
	})

	t.Run(`missing assignment is refused`, func(t *testing.T) {
		h := impl{
			store: &fakeStore{test: &dbmodels.Test{}},
			candidateStore: &fakeCandidateStore{
				candidate: &dbmodels.Candidate{BaseModel: dbmodels.BaseModel{ID: "c1"}},
			},
			resultStore: &fakeResultStore{},
		}
		err := h.ReleaseResults("t1", "u1", testapimodels.ReleaseRequest{CandidateID: "c1"})
		require.ErrorIs(t, err, ErrNoAssignment)
	})
}

func TestResultStatus(t *testing.T) {
	t.Run(`manual questions outstanding keep the result pending`, func(t *testing.T) {
		require.Equal(t, models.TestResultStatusPending, resultStatus(scoring.Outcome{PendingManual: 1}))
	})

	t.Run(`fully auto-graded result is completed until released`, func(t *testing.T) {
		require.Equal(t, models.TestResultStatusCompleted, resultStatus(scoring.Outcome{Passed: true}))
		require.Equal(t, models.TestResultStatusCompleted, resultStatus(scoring.Outcome{}))
	})
}
