package candidatehistoryhandler

import (
	"fmt"

	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

func GetAppliedChanges(formTitle string) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Applied through the form %q", formTitle),
	}
}

func GetStatusChange(oldStatus, newStatus models.CandidateStatus, reason string) dbmodels.CandidateChanges {
	descr := fmt.Sprintf("Status changed from %q to %q", oldStatus.ToHuman(), newStatus.ToHuman())
	if reason != "" {
		descr = fmt.Sprintf("%v: %v", descr, reason)
	}
	return dbmodels.CandidateChanges{
		Description: descr,
		Data: []dbmodels.CandidateChange{
			{
				Field:    "status",
				OldValue: oldStatus,
				NewValue: newStatus,
			},
		},
	}
}

func GetTestAssigned(testTitle string) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Assigned the test %q", testTitle),
	}
}

func GetTestSubmitted(testTitle string, score, totalMarks, percentage float64) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Submitted the test %q: %.2f of %.2f (%.2f%%)", testTitle, score, totalMarks, percentage),
		Data: []dbmodels.CandidateChange{
			{
				Field:    "score",
				OldValue: nil,
				NewValue: score,
			},
		},
	}
}

func GetResultReleased(testTitle string, passed bool) dbmodels.CandidateChanges {
	verdict := "rejected"
	if passed {
		verdict = "promoted"
	}
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Result of the test %q released, candidate %v", testTitle, verdict),
	}
}

func GetInterviewScheduled(interviewType models.InterviewType, date, timeSlot string) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Interview (%v) scheduled for %v %v", interviewType, date, timeSlot),
	}
}
