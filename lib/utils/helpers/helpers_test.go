package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	t.Run(`ToSnakeCase check`, func(t *testing.T) {
		require.Equal(t, "first_name", ToSnakeCase("FirstName"))
		require.Equal(t, "reject_reason", ToSnakeCase("RejectReason"))
		require.Equal(t, "passing_percentage", ToSnakeCase("PassingPercentage"))
		require.Equal(t, "id", ToSnakeCase("ID"))
	})

	t.Run(`IsContextDone check`, func(t *testing.T) {
		require.Equal(t, true, IsContextDone(nil))

		ctx, cancel := context.WithCancel(context.Background())
		require.Equal(t, false, IsContextDone(ctx))
		cancel()
		require.Equal(t, true, IsContextDone(ctx))
	})
}
