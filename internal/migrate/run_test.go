package migrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-ui/internal/migrate"
	"github.com/learnsphere/learnsphere-ui/internal/testutil"
)

func TestVersions_Sorted(t *testing.T) {
	versions, err := migrate.Versions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "0001_client_storage", versions[0])
	assert.IsNonDecreasing(t, versions)
}

func TestRun_Idempotent(t *testing.T) {
	db := testutil.SetupAutoDB(t)
	ctx := context.Background()

	// SetupAutoDB already migrated, so nothing is pending.
	applied, err := migrate.Run(ctx, db, nil)
	require.NoError(t, err)
	assert.Empty(t, applied)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM client_storage`).Scan(&n))
	assert.Zero(t, n)
}
