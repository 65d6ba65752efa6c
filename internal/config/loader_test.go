package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("SCRIBE_TEST_HOST", "db.internal")

	t.Run("env value wins", func(t *testing.T) {
		assert.Equal(t, "host: db.internal", expandEnv("host: ${SCRIBE_TEST_HOST:localhost}"))
	})

	t.Run("default used when unset", func(t *testing.T) {
		assert.Equal(t, "host: localhost", expandEnv("host: ${SCRIBE_TEST_MISSING:localhost}"))
	})

	t.Run("empty default", func(t *testing.T) {
		assert.Equal(t, "key: ", expandEnv("key: ${SCRIBE_TEST_MISSING:}"))
	})

	t.Run("no default keeps placeholder", func(t *testing.T) {
		assert.Equal(t, "key: ${SCRIBE_TEST_MISSING}", expandEnv("key: ${SCRIBE_TEST_MISSING}"))
	})
}
