package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(sql.ErrNoRows))
	assert.True(t, isNotFound(fmt.Errorf("get row: %w", sql.ErrNoRows)))
	assert.False(t, isNotFound(fmt.Errorf("connection refused")))
	assert.False(t, isNotFound(nil))
}

func TestNullString(t *testing.T) {
	assert.False(t, nullString("").Valid)

	v := nullString("t1")
	assert.True(t, v.Valid)
	assert.Equal(t, "t1", v.String)
}

func TestNullIntRoundTrip(t *testing.T) {
	assert.Nil(t, intPtr(sql.NullInt64{}))
	assert.False(t, nullInt(nil).Valid)

	score := 3
	got := intPtr(nullInt(&score))
	assert.NotNil(t, got)
	assert.Equal(t, 3, *got)
}
