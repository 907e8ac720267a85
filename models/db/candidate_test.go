package dbmodels

import (
	"testing"

	"recruit-flow-backend/models"

	"github.com/stretchr/testify/require"
)

func TestCandidateStatusFlow(t *testing.T) {
	t.Run(`same status is a no-op`, func(t *testing.T) {
		rec := Candidate{Status: models.CandidateStatusPending}
		allowed, err := rec.IsAllowStatusChange(models.CandidateStatusPending)
		require.Nil(t, err)
		require.Equal(t, false, allowed)
	})

	t.Run(`pending moves forward`, func(t *testing.T) {
		rec := Candidate{Status: models.CandidateStatusPending}
		for _, next := range []models.CandidateStatus{
			models.CandidateStatusApproved,
			models.CandidateStatusShortlisted,
			models.CandidateStatusRejected,
			models.CandidateStatusOnHold,
		} {
			allowed, err := rec.IsAllowStatusChange(next)
			require.Nil(t, err)
			require.Equal(t, true, allowed)
		}
	})

	t.Run(`pending can not jump to selected`, func(t *testing.T) {
		rec := Candidate{Status: models.CandidateStatusPending}
		allowed, err := rec.IsAllowStatusChange(models.CandidateStatusSelected)
		require.NotNil(t, err)
		require.Equal(t, false, allowed)
	})

	t.Run(`rejected is terminal`, func(t *testing.T) {
		rec := Candidate{Status: models.CandidateStatusRejected}
		allowed, err := rec.IsAllowStatusChange(models.CandidateStatusApproved)
		require.NotNil(t, err)
		require.Equal(t, false, allowed)
	})

	t.Run(`selected is terminal`, func(t *testing.T) {
		rec := Candidate{Status: models.CandidateStatusSelected}
		allowed, err := rec.IsAllowStatusChange(models.CandidateStatusShortlisted)
		require.NotNil(t, err)
		require.Equal(t, false, allowed)
	})

	t.Run(`on hold resumes`, func(t *testing.T) {
		rec := Candidate{Status: models.CandidateStatusOnHold}
		allowed, err := rec.IsAllowStatusChange(models.CandidateStatusApproved)
		require.Nil(t, err)
		require.Equal(t, true, allowed)
	})
}

func TestCandidateGetFIO(t *testing.T) {
	t.Run(`full name`, func(t *testing.T) {
		rec := Candidate{FirstName: "Priya", LastName: "Sharma"}
		require.Equal(t, "Priya Sharma", rec.GetFIO())
	})

	t.Run(`first name only`, func(t *testing.T) {
		rec := Candidate{FirstName: "Priya"}
		require.Equal(t, "Priya", rec.GetFIO())
	})
}
