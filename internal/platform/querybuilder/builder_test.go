package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectToSQL(t *testing.T) {
	sql, args, err := Select("id", "name").
		From("teams").
		Where(Eq("owner_id", "o1"), IsNull("deleted_at")).
		OrderBy("created_at DESC").
		Limit(10).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM teams WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT 10", sql)
	assert.Equal(t, []any{"o1"}, args)
}

func TestSelectInCondition(t *testing.T) {
	sql, args, err := Select("id").
		From("players").
		Where(In("team_id", []any{"t1", "t2"})).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM players WHERE team_id IN ($1, $2)", sql)
	assert.Equal(t, []any{"t1", "t2"}, args)
}

func TestSelectEmptyInMatchesNothing(t *testing.T) {
	sql, args, err := Select("id").
		From("players").
		Where(In("team_id", nil)).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM players WHERE 1=0", sql)
	assert.Empty(t, args)
}

func TestInsertMultiRowWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("participations").
		Columns("match_id", "player_id").
		Values("m1", "p1").
		Values("m1", "p2").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO participations (match_id, player_id) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING", sql)
	assert.Equal(t, []any{"m1", "p1", "m1", "p2"}, args)
}

func TestInsertRowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").
		Columns("id", "name").
		Values("t1").
		ToSQL()

	require.Error(t, err)
}

func TestUpdateToSQL(t *testing.T) {
	sql, args, err := Update("matches").
		Set("status", "PLAYED").
		Set("home_score", 2).
		Where(Eq("id", "m1"), Eq("owner_id", "o1")).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE matches SET status = $1, home_score = $2 WHERE id = $3 AND owner_id = $4", sql)
	assert.Equal(t, []any{"PLAYED", 2, "m1", "o1"}, args)
}

func TestDeleteRequiresConditions(t *testing.T) {
	_, _, err := DeleteFrom("teams").ToSQL()
	require.Error(t, err)

	sql, args, err := DeleteFrom("teams").Where(Eq("owner_id", "o1")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM teams WHERE owner_id = $1", sql)
	assert.Equal(t, []any{"o1"}, args)
}
