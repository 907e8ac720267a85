package models

// CandidateStatus is the overall pipeline stage of a candidate,
// independent of any single test's pass/fail.
type CandidateStatus string

const (
	CandidateStatusPending     CandidateStatus = "pending"
	CandidateStatusApproved    CandidateStatus = "approved"
	CandidateStatusShortlisted CandidateStatus = "shortlisted"
	CandidateStatusSelected    CandidateStatus = "selected"
	CandidateStatusRejected    CandidateStatus = "rejected"
	CandidateStatusOnHold      CandidateStatus = "on_hold"
)

func (s CandidateStatus) ToHuman() string {
	switch s {
	case CandidateStatusPending:
		return "Pending"
	case CandidateStatusApproved:
		return "Approved"
	case CandidateStatusShortlisted:
		return "Shortlisted"
	case CandidateStatusSelected:
		return "Selected"
	case CandidateStatusRejected:
		return "Rejected"
	case CandidateStatusOnHold:
		return "On hold"
	}
	return string(s)
}

type QuestionType string

const (
	QuestionTypeMCQ            QuestionType = "mcq"
	QuestionTypeMultipleAnswer QuestionType = "multiple_answer"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
	QuestionTypeLongAnswer     QuestionType = "long_answer"
	QuestionTypeCoding         QuestionType = "coding"
)

// IsObjective reports whether the question type is auto-gradable.
func (t QuestionType) IsObjective() bool {
	return t == QuestionTypeMCQ || t == QuestionTypeMultipleAnswer
}

type AssignmentStatus string

const (
	AssignmentStatusInvited   AssignmentStatus = "invited"
	AssignmentStatusStarted   AssignmentStatus = "started"
	AssignmentStatusCompleted AssignmentStatus = "completed"
	AssignmentStatusExpired   AssignmentStatus = "expired"
)

type TestResultStatus string

const (
	TestResultStatusPending   TestResultStatus = "pending"
	TestResultStatusCompleted TestResultStatus = "completed"
	TestResultStatusPassed    TestResultStatus = "passed"
	TestResultStatusFailed    TestResultStatus = "failed"
)

type InterviewType string

const (
	InterviewTypeTechnical InterviewType = "technical"
	InterviewTypeHR        InterviewType = "hr"
	InterviewTypeManagment InterviewType = "management"
)

type InterviewCandidateStatus string

const (
	InterviewCandidateScheduled InterviewCandidateStatus = "scheduled"
	InterviewCandidateDone      InterviewCandidateStatus = "done"
	InterviewCandidateNoShow    InterviewCandidateStatus = "no_show"
)

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSms   NotificationChannel = "sms"
	NotificationChannelPush  NotificationChannel = "push"
)

type NotificationStatus string

const (
	NotificationStatusQueued NotificationStatus = "queued"
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

type ActionType string

const (
	ActionTypeApplied        ActionType = "applied"
	ActionTypeStatusChange   ActionType = "status_change"
	ActionTypeTestAssigned   ActionType = "test_assigned"
	ActionTypeTestSubmitted  ActionType = "test_submitted"
	ActionTypeResultReleased ActionType = "result_released"
	ActionTypeInterviewSet   ActionType = "interview_scheduled"
	ActionTypeNote           ActionType = "note"
)
