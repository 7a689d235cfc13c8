package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v, err := Load("config-test-missing")
	require.NoError(t, err)

	assert.Equal(t, "production", GetAppEnv(v))
	assert.Equal(t, ":8080", GetServicePort(v, "SERVICE_PORT"))

	kafka := LoadKafkaConfig(v)
	assert.Equal(t, []string{"localhost:9092"}, kafka.Brokers)
	assert.Equal(t, 5*time.Second, kafka.RequestTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", " Development ")
	t.Setenv("SERVICE_PORT", ":9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "users")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_GROUP_PREFIX", "prod-")
	t.Setenv("KAFKA_REQUEST_TIMEOUT", "750ms")

	v, err := Load("config-test-missing")
	require.NoError(t, err)

	assert.Equal(t, "development", GetAppEnv(v))
	assert.Equal(t, ":9090", GetServicePort(v, "SERVICE_PORT"))

	db := LoadDatabaseConfig(v, "DB_NAME")
	assert.Equal(t, "db.internal", db.Host)
	assert.Equal(t, "users", db.DBName)
	assert.Equal(t, "disable", db.SSLMode)

	kafka := LoadKafkaConfig(v)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, kafka.Brokers)
	assert.Equal(t, "prod-", kafka.GroupPrefix)
	assert.Equal(t, 750*time.Millisecond, kafka.RequestTimeout)
}
