package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisConfig_Options(t *testing.T) {
	t.Run("discrete settings", func(t *testing.T) {
		opts, err := (&RedisConfig{Host: "cache", Port: "6380", DB: 2, PoolSize: 5}).Options()

		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 5, opts.PoolSize)
	})

	t.Run("url wins", func(t *testing.T) {
		opts, err := (&RedisConfig{URL: "redis://:pw@redis.internal:6379/3", Host: "ignored", PoolSize: 7}).Options()

		require.NoError(t, err)
		assert.Equal(t, "redis.internal:6379", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.Equal(t, 3, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := (&RedisConfig{URL: "http://nope"}).Options()

		assert.Error(t, err)
	})
}

func TestDatabaseConfig(t *testing.T) {
	t.Setenv("POSTGRES_WRITER_HOST", "primary")
	t.Setenv("POSTGRES_WRITER_PASSWORD", "secret")

	writer := getWriterConfig()
	assert.Equal(t, "primary", writer.Host)
	assert.Contains(t, writer.DSN(), "host=primary")
	assert.Contains(t, writer.DSN(), "TimeZone=UTC")

	assert.Nil(t, getReaderConfig(writer))

	t.Setenv("POSTGRES_READER_HOST", "replica")
	reader := getReaderConfig(writer)
	require.NotNil(t, reader)
	assert.Equal(t, "replica", reader.Host)
	assert.Equal(t, "secret", reader.Password)
}
