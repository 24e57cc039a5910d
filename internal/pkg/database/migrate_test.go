package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_auth.sql":        {Data: []byte("SELECT 1;")},
		"migrations/0001_core_schema.sql": {Data: []byte("SELECT 1;")},
		"migrations/README.md":            {Data: []byte("notes")},
	}

	names, err := migrationNames(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_core_schema.sql", "0002_auth.sql"}, names)
}

func TestEmbeddedMigrations_Present(t *testing.T) {
	names, err := migrationNames(migrationFiles)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_core_schema.sql", names[0])
}
