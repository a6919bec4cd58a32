package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/migrations"
	"github.com/mcdev12/cubedraft/go/internal/testdb"
)

func TestSchemaDeclaresConstraints(t *testing.T) {
	s := migrations.Schema()
	for _, want := range []string{
		"participants_external_identity_key",
		"draft_participants_draft_id_participant_id_key",
		"pool_entries_draft_id_card_id_key",
		"picks_draft_id_pick_number_key",
		"CHECK (remaining_count >= 0)",
		"pg_notify('draft_outbox_events'",
	} {
		assert.Contains(t, s, want)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	tdb := testdb.New(t)

	// testdb.New already applied it once.
	require.NoError(t, migrations.Apply(context.Background(), tdb.DB))

	var tables int
	err := tdb.DB.QueryRow(`
		SELECT count(*) FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name IN ('participants', 'drafts', 'draft_participants', 'cards', 'pool_entries', 'picks', 'draft_outbox')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 7, tables)
}
