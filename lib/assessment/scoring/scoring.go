package scoring

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	dbmodels "recruit-flow-backend/models/db"
)

// Normalized is the canonical, index-based form of an answer.
// A scalar answer is a single index with Multi=false.
type Normalized struct {
	Indices []int
	Multi   bool
}

// NormalizeAnswer maps an accepted answer representation (option index,
// array of indices, option text, or array of texts) onto option indices.
// Returns nil when options are missing or the value cannot be resolved.
// Unresolved elements inside an array are dropped, not kept as gaps.
func NormalizeAnswer(raw json.RawMessage, options []string) *Normalized {
	if len(options) == 0 || len(raw) == 0 {
		return nil
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return normalizeValue(value, options)
}

func normalizeValue(value interface{}, options []string) *Normalized {
	switch v := value.(type) {
	case []interface{}:
		indices := make([]int, 0, len(v))
		for _, item := range v {
			if idx := normalizeScalar(item, options); idx != nil {
				indices = append(indices, *idx)
			}
		}
		return &Normalized{Indices: indices, Multi: true}
	default:
		idx := normalizeScalar(value, options)
		if idx == nil {
			return nil
		}
		return &Normalized{Indices: []int{*idx}}
	}
}

func normalizeScalar(value interface{}, options []string) *int {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil
		}
		n := int(v)
		if n < 0 || n >= len(options) {
			return nil
		}
		return &n
	case string:
		needle := strings.TrimSpace(v)
		for i, opt := range options {
			if strings.EqualFold(needle, strings.TrimSpace(opt)) {
				idx := i
				return &idx
			}
		}
		return nil
	default:
		return nil
	}
}

// normalizeKey normalizes the question's correct-answer field. The same
// scalar rules apply, but arrays must be homogeneous (all indices or all
// texts); a mixed key is ungradable and yields nil.
func normalizeKey(raw json.RawMessage, options []string) *Normalized {
	if len(options) == 0 || len(raw) == 0 {
		return nil
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	if arr, ok := value.([]interface{}); ok {
		if !isHomogeneous(arr) {
			return nil
		}
	}
	return normalizeValue(value, options)
}

func isHomogeneous(arr []interface{}) bool {
	hasNumber := false
	hasString := false
	for _, item := range arr {
		switch item.(type) {
		case float64:
			hasNumber = true
		case string:
			hasString = true
		default:
			return false
		}
	}
	return !(hasNumber && hasString)
}

// ValidateObjective decides correctness of one answer for mcq and
// multiple_answer questions. Subjective types are never auto-validated:
// the result stays nil, meaning "pending manual evaluation". An ungradable
// key configuration makes the answer incorrect, never an error.
func ValidateObjective(q dbmodels.TestQuestion, answer json.RawMessage) *bool {
	if !q.Type.IsObjective() {
		return nil
	}
	got := NormalizeAnswer(answer, q.Options)
	want := normalizeKey(q.CorrectAnswer, q.Options)
	result := validate(got, want)
	return &result
}

func validate(got, want *Normalized) bool {
	if got == nil || want == nil {
		return false
	}
	if got.Multi != want.Multi {
		return false
	}
	if !got.Multi {
		return got.Indices[0] == want.Indices[0]
	}
	if len(got.Indices) != len(want.Indices) {
		return false
	}
	// order-insensitive: compare sorted sequences, duplicates included
	a := append([]int(nil), got.Indices...)
	b := append([]int(nil), want.Indices...)
	sort.Ints(a)
	sort.Ints(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type SubmittedAnswer struct {
	QuestionID   string
	Answer       json.RawMessage
	TimeTakenSec int
	AnsweredAt   *time.Time
}

type Outcome struct {
	Answers        []dbmodels.ResultAnswer
	Score          float64
	TotalMarks     float64
	Percentage     float64
	Passed         bool
	CorrectAnswers int
	PendingManual  int
	UnknownIDs     []string // stale question ids passed through unscored
}

// GradeSubmission grades a full submission against the test's question bank.
// The submission may be sparse. Unknown question ids are passed through
// unchanged so stale client state never fails the whole grading.
func GradeSubmission(test dbmodels.Test, answers []SubmittedAnswer) Outcome {
	out := Outcome{
		Answers:    make([]dbmodels.ResultAnswer, 0, len(answers)),
		TotalMarks: test.TotalMarks,
	}
	for _, submitted := range answers {
		rec := dbmodels.ResultAnswer{
			QuestionID:   submitted.QuestionID,
			Answer:       submitted.Answer,
			TimeTakenSec: submitted.TimeTakenSec,
			AnsweredAt:   submitted.AnsweredAt,
		}
		question := test.FindQuestion(submitted.QuestionID)
		if question == nil {
			out.UnknownIDs = append(out.UnknownIDs, submitted.QuestionID)
			out.Answers = append(out.Answers, rec)
			continue
		}
		if question.Type.IsObjective() {
			rec.Correct = ValidateObjective(*question, submitted.Answer)
			if rec.Correct != nil && *rec.Correct {
				rec.MarksAwarded = question.GetMarks()
				out.Score += rec.MarksAwarded
				out.CorrectAnswers++
			}
		} else {
			// short_answer/long_answer/coding await manual review
			out.PendingManual++
		}
		out.Answers = append(out.Answers, rec)
	}
	out.Percentage = Percentage(out.Score, test.TotalMarks)
	out.Passed = out.Percentage >= test.PassingPercentage
	return out
}

// Percentage guards the zero-marks case: a test without marks scores 0,
// never NaN or Inf.
func Percentage(score, totalMarks float64) float64 {
	if totalMarks <= 0 {
		return 0
	}
	return score / totalMarks * 100
}
