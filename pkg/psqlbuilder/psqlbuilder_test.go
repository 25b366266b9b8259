package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_DollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "pcode").
		From("registered_users").
		Where(squirrel.Eq{"cllogin": "ivanov", "clpassword": "secret"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, pcode FROM registered_users WHERE cllogin = $1 AND clpassword = $2", query)
	assert.Equal(t, []interface{}{"ivanov", "secret"}, args)
}

func TestDelete(t *testing.T) {
	query, args, err := Delete("registered_users").Where(squirrel.Eq{"platform_user_id": int64(7)}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM registered_users WHERE platform_user_id = $1", query)
	assert.Equal(t, []interface{}{int64(7)}, args)
}
