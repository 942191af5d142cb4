package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PrefixedKeyWins(t *testing.T) {
	t.Setenv("TESTSVC_DB_HOST", "db.internal")
	t.Setenv("DB_HOST", "ignored")
	t.Setenv("JWT_TTL", "90m")

	v, err := Load("TESTSVC")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", LoadDatabaseConfig(v, "DB_NAME").Host)
	assert.Equal(t, 90*time.Minute, LoadJWTConfig(v).TTL)
}

func TestLoad_Defaults(t *testing.T) {
	v, err := Load("EMPTYSVC")
	require.NoError(t, err)

	assert.Equal(t, ":8080", GetServicePort(v, "SERVICE_PORT"))
	assert.Equal(t, "development", GetAppEnv(v))
	assert.Equal(t, []string{"localhost:9092"}, LoadKafkaConfig(v).Brokers)
}

func TestGetServicePort_BarePort(t *testing.T) {
	t.Setenv("PORTSVC_SERVICE_PORT", "9000")

	v, err := Load("PORTSVC")
	require.NoError(t, err)

	assert.Equal(t, ":9000", GetServicePort(v, "SERVICE_PORT"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitList(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitList(""))
}
