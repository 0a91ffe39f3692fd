package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyDSNForcesParseTime(t *testing.T) {
	dsn, err := legacyDSN("reader:secret@tcp(legacy.internal:3306)/shop")
	require.NoError(t, err)

	c, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, c.ParseTime)
	assert.Equal(t, "shop", c.DBName)
	assert.Equal(t, "legacy.internal:3306", c.Addr)
	assert.Equal(t, "reader", c.User)
}

func TestLegacyDSNRejectsGarbage(t *testing.T) {
	_, err := legacyDSN("not a dsn")
	assert.Error(t, err)
}
