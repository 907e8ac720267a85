package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEffectiveCutoff(t *testing.T) {
	t.Run(`falls back to passing percentage`, func(t *testing.T) {
		rec := Test{PassingPercentage: 40}
		require.Equal(t, 40.0, rec.EffectiveCutoff())
	})

	t.Run(`explicit cutoff wins`, func(t *testing.T) {
		cutoff := 60.0
		rec := Test{PassingPercentage: 40, CutoffPercentage: &cutoff}
		require.Equal(t, 60.0, rec.EffectiveCutoff())
	})
}

func TestQuestionMarks(t *testing.T) {
	t.Run(`unset marks default to one`, func(t *testing.T) {
		q := TestQuestion{}
		require.Equal(t, 1.0, q.GetMarks())
	})

	t.Run(`total sums defaults and explicit marks`, func(t *testing.T) {
		qs := TestQuestions{Questions: []TestQuestion{
			{Marks: 2},
			{Marks: 0},
			{Marks: 2.5},
		}}
		require.Equal(t, 5.5, qs.TotalMarks())
	})
}

func TestFindQuestion(t *testing.T) {
	rec := Test{Questions: TestQuestions{Questions: []TestQuestion{
		{ID: "q1", Text: "first"},
		{ID: "q2", Text: "second"},
	}}}

	t.Run(`known id`, func(t *testing.T) {
		q := rec.FindQuestion("q2")
		require.NotNil(t, q)
		require.Equal(t, "second", q.Text)
	})

	t.Run(`unknown id`, func(t *testing.T) {
		require.Nil(t, rec.FindQuestion("q3"))
	})
}

func TestAssignmentDeadline(t *testing.T) {
	t.Run(`no deadline before start`, func(t *testing.T) {
		rec := TestAssignment{}
		require.Nil(t, rec.Deadline(time.Hour, time.Minute))
	})

	t.Run(`deadline includes grace`, func(t *testing.T) {
		startedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		rec := TestAssignment{StartedAt: &startedAt}
		deadline := rec.Deadline(30*time.Minute, 2*time.Minute)
		require.NotNil(t, deadline)
		require.Equal(t, startedAt.Add(32*time.Minute), *deadline)
	})
}
