package scoring

import (
	"encoding/json"
	"math"
	"testing"

	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/stretchr/testify/require"
)

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.Nil(t, err)
	return b
}

func TestNormalizeAnswer(t *testing.T) {
	options := []string{"A", "B", "C", "D"}

	t.Run(`valid scalar index returned unchanged`, func(t *testing.T) {
		for i := range options {
			got := NormalizeAnswer(raw(t, i), options)
			require.NotNil(t, got)
			require.Equal(t, false, got.Multi)
			require.Equal(t, []int{i}, got.Indices)
		}
	})

	t.Run(`out of range index resolves to nil`, func(t *testing.T) {
		require.Nil(t, NormalizeAnswer(raw(t, 4), options))
		require.Nil(t, NormalizeAnswer(raw(t, -1), options))
	})

	t.Run(`string matches case-insensitively with whitespace trimmed`, func(t *testing.T) {
		got := NormalizeAnswer(raw(t, "  b "), options)
		require.NotNil(t, got)
		require.Equal(t, []int{1}, got.Indices)

		got = NormalizeAnswer(raw(t, "c"), options)
		require.NotNil(t, got)
		require.Equal(t, []int{2}, got.Indices)
	})

	t.Run(`string with no matching option resolves to nil`, func(t *testing.T) {
		require.Nil(t, NormalizeAnswer(raw(t, "E"), options))
	})

	t.Run(`first match wins on duplicate options`, func(t *testing.T) {
		got := NormalizeAnswer(raw(t, "x"), []string{"X", "x"})
		require.NotNil(t, got)
		require.Equal(t, []int{0}, got.Indices)
	})

	t.Run(`array maps element-wise and drops unresolved elements`, func(t *testing.T) {
		got := NormalizeAnswer(raw(t, []interface{}{0, 9, "b", "nope"}), options)
		require.NotNil(t, got)
		require.Equal(t, true, got.Multi)
		require.Equal(t, []int{0, 1}, got.Indices)
	})

	t.Run(`empty options resolve to nil`, func(t *testing.T) {
		require.Nil(t, NormalizeAnswer(raw(t, 0), nil))
		require.Nil(t, NormalizeAnswer(raw(t, "A"), []string{}))
	})

	t.Run(`unsupported types resolve to nil`, func(t *testing.T) {
		require.Nil(t, NormalizeAnswer(raw(t, true), options))
		require.Nil(t, NormalizeAnswer(raw(t, map[string]string{"a": "b"}), options))
		require.Nil(t, NormalizeAnswer(raw(t, nil), options))
		require.Nil(t, NormalizeAnswer(raw(t, 1.5), options))
	})
}

func TestValidateObjective(t *testing.T) {
	mcq := func(correct interface{}) dbmodels.TestQuestion {
		b, _ := json.Marshal(correct)
		return dbmodels.TestQuestion{
			ID:            "q1",
			Type:          models.QuestionTypeMCQ,
			Options:       []string{"Red", "Blue", "Green"},
			CorrectAnswer: b,
			Marks:         1,
		}
	}
	multi := func(correct interface{}) dbmodels.TestQuestion {
		q := mcq(correct)
		q.Type = models.QuestionTypeMultipleAnswer
		return q
	}

	cases := []struct {
		name     string
		question dbmodels.TestQuestion
		answer   interface{}
		want     *bool
	}{
		{name: "index vs index correct", question: mcq(1), answer: 1, want: boolPtr(true)},
		{name: "index vs index wrong", question: mcq(1), answer: 2, want: boolPtr(false)},
		{name: "string key vs index answer", question: mcq("blue"), answer: 1, want: boolPtr(true)},
		{name: "index key vs string answer", question: mcq(2), answer: " green ", want: boolPtr(true)},
		{name: "multi order-insensitive", question: multi([]int{0, 2}), answer: []int{2, 0}, want: boolPtr(true)},
		{name: "multi text key", question: multi([]string{"red", "green"}), answer: []int{2, 0}, want: boolPtr(true)},
		{name: "multi differing lengths", question: multi([]int{0, 2}), answer: []int{0}, want: boolPtr(false)},
		{name: "multi duplicates differ", question: multi([]int{1, 1, 2}), answer: []int{1, 2, 2}, want: boolPtr(false)},
		{name: "array answer vs scalar key", question: mcq(1), answer: []int{1}, want: boolPtr(false)},
		{name: "scalar answer vs array key", question: multi([]int{1}), answer: 1, want: boolPtr(false)},
		{name: "heterogeneous key ungradable", question: multi([]interface{}{0, "Blue"}), answer: []int{0, 1}, want: boolPtr(false)},
		{name: "unresolvable key ungradable", question: mcq("Purple"), answer: 0, want: boolPtr(false)},
		{name: "unresolvable answer wrong", question: mcq(1), answer: "Purple", want: boolPtr(false)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateObjective(tc.question, raw(t, tc.answer))
			require.NotNil(t, got)
			require.Equal(t, *tc.want, *got)
		})
	}

	t.Run(`subjective types are never auto-validated`, func(t *testing.T) {
		for _, qt := range []models.QuestionType{
			models.QuestionTypeShortAnswer,
			models.QuestionTypeLongAnswer,
			models.QuestionTypeCoding,
		} {
			q := dbmodels.TestQuestion{ID: "q", Type: qt, Marks: 1}
			require.Nil(t, ValidateObjective(q, raw(t, "free text")))
		}
	})
}

func TestGradeSubmission(t *testing.T) {
	q := func(id string, qt models.QuestionType, marks float64, options []string, correct interface{}) dbmodels.TestQuestion {
		var key json.RawMessage
		if correct != nil {
			key, _ = json.Marshal(correct)
		}
		return dbmodels.TestQuestion{ID: id, Type: qt, Options: options, CorrectAnswer: key, Marks: marks}
	}
	newTest := func(passing float64, questions ...dbmodels.TestQuestion) dbmodels.Test {
		rec := dbmodels.Test{
			PassingPercentage: passing,
			Questions:         dbmodels.TestQuestions{Questions: questions},
		}
		rec.TotalMarks = rec.Questions.TotalMarks()
		return rec
	}

	t.Run(`objective plus subjective mix`, func(t *testing.T) {
		rec := newTest(50,
			q("q1", models.QuestionTypeMCQ, 1, []string{"A", "B", "C", "D"}, 1),
			q("q2", models.QuestionTypeMultipleAnswer, 1, []string{"A", "B", "C"}, []int{0, 2}),
			q("q3", models.QuestionTypeLongAnswer, 3, nil, nil),
		)
		// subjective question marks still count toward the total
		require.Equal(t, 5.0, rec.TotalMarks)

		out := GradeSubmission(rec, []SubmittedAnswer{
			{QuestionID: "q1", Answer: raw(t, 1)},
			{QuestionID: "q2", Answer: raw(t, []int{2, 0})},
			{QuestionID: "q3", Answer: raw(t, "my essay")},
		})
		require.Equal(t, 2.0, out.Score)
		require.Equal(t, 2, out.CorrectAnswers)
		require.Equal(t, 1, out.PendingManual)
		require.InDelta(t, 40.0, out.Percentage, 1e-9)
		require.Equal(t, false, out.Passed)

		require.Len(t, out.Answers, 3)
		require.NotNil(t, out.Answers[0].Correct)
		require.Equal(t, true, *out.Answers[0].Correct)
		require.Equal(t, 1.0, out.Answers[0].MarksAwarded)
		require.Nil(t, out.Answers[2].Correct)
		require.Equal(t, 0.0, out.Answers[2].MarksAwarded)
	})

	t.Run(`all objective correct yields full percentage`, func(t *testing.T) {
		rec := newTest(50,
			q("q1", models.QuestionTypeMCQ, 1, []string{"A", "B"}, 0),
			q("q2", models.QuestionTypeMCQ, 1, []string{"A", "B"}, 1),
			q("q3", models.QuestionTypeShortAnswer, 0, nil, nil),
		)
		out := GradeSubmission(rec, []SubmittedAnswer{
			{QuestionID: "q1", Answer: raw(t, 0)},
			{QuestionID: "q2", Answer: raw(t, 1)},
			{QuestionID: "q3", Answer: raw(t, "text")},
		})
		require.Equal(t, 2.0, out.Score)
		require.InDelta(t, out.Score/rec.TotalMarks*100, out.Percentage, 1e-9)
	})

	t.Run(`multi-answer question awards its full marks`, func(t *testing.T) {
		rec := newTest(50, q("q1", models.QuestionTypeMultipleAnswer, 2, []string{"A", "B", "C"}, []int{0, 2}))
		out := GradeSubmission(rec, []SubmittedAnswer{{QuestionID: "q1", Answer: raw(t, []int{2, 0})}})
		require.Equal(t, 2.0, out.Score)
		require.InDelta(t, 100.0, out.Percentage, 1e-9)
	})

	t.Run(`sparse submission leaves unanswered questions unscored`, func(t *testing.T) {
		rec := newTest(50,
			q("q1", models.QuestionTypeMCQ, 1, []string{"A", "B"}, 0),
			q("q2", models.QuestionTypeMCQ, 1, []string{"A", "B"}, 1),
		)
		out := GradeSubmission(rec, []SubmittedAnswer{{QuestionID: "q2", Answer: raw(t, 1)}})
		require.Equal(t, 1.0, out.Score)
		require.Len(t, out.Answers, 1)
	})

	t.Run(`unknown question id passes through without failing`, func(t *testing.T) {
		rec := newTest(50, q("q1", models.QuestionTypeMCQ, 1, []string{"A", "B"}, 0))
		out := GradeSubmission(rec, []SubmittedAnswer{
			{QuestionID: "q1", Answer: raw(t, 0)},
			{QuestionID: "stale", Answer: raw(t, 1)},
		})
		require.Equal(t, 1.0, out.Score)
		require.Equal(t, []string{"stale"}, out.UnknownIDs)
		require.Len(t, out.Answers, 2)
		require.Nil(t, out.Answers[1].Correct)
		require.Equal(t, 0.0, out.Answers[1].MarksAwarded)
	})

	t.Run(`zero total marks never yields NaN`, func(t *testing.T) {
		rec := newTest(50)
		out := GradeSubmission(rec, nil)
		require.Equal(t, 0.0, out.Percentage)
		require.Equal(t, false, math.IsNaN(out.Percentage))
		require.Equal(t, false, out.Passed)

		rec.PassingPercentage = 0
		out = GradeSubmission(rec, nil)
		require.Equal(t, true, out.Passed)
	})
}

func TestPercentage(t *testing.T) {
	require.Equal(t, 0.0, Percentage(5, 0))
	require.InDelta(t, 50.0, Percentage(1, 2), 1e-9)
	require.InDelta(t, 100.0, Percentage(3, 3), 1e-9)
}

func boolPtr(v bool) *bool {
	return &v
}
