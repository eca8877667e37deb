package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "brewpair.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", SQLiteDSN("brewpair.db"))
	assert.Equal(t, "file:x?mode=memory&cache=shared&_foreign_keys=on", SQLiteDSN("file:x?mode=memory&cache=shared"))
	assert.Equal(t, "app.db?_fk=1&_journal_mode=WAL&_busy_timeout=5000", SQLiteDSN("app.db?_fk=1"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", SQLiteDSN("file:x?mode=memory&_foreign_keys=on"))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TRACKER_WORKERS", "0")

	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 1, cfg.TrackerWorkers)
	assert.Equal(t, 256, cfg.TrackerBuffer)
	assert.Equal(t, "24h0m0s", cfg.JWTTTL.String())
}
