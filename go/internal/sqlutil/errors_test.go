package sqlutil

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "participants_external_identity_key"}

	assert.True(t, IsUniqueViolation(dup, ""))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", dup), "participants_external_identity_key"))
	assert.False(t, IsUniqueViolation(dup, "draft_participants_draft_id_participant_id_key"))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("x: %w", &pq.Error{Code: "23503"})))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))
}

func TestNullConverters(t *testing.T) {
	s := "https://cards.example/normal.jpg"
	assert.Equal(t, &s, FromSqlStringPtr(sql.NullString{String: s, Valid: true}))
	assert.Nil(t, FromSqlStringPtr(sql.NullString{}))

	id := uuid.New()
	assert.Equal(t, &id, FromNullUUID(uuid.NullUUID{UUID: id, Valid: true}))
	assert.Nil(t, FromNullUUID(uuid.NullUUID{}))
}
