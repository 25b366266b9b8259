package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[server]
http_port = 8080

[database]
host = "localhost"
port = 5432
user = "clinic"
password = "secret"
dbname = "clinicbot"

[telegram]
bot_token = "123:abc"

[infoclinica]
base_url = "https://demo.infoclinica.ru"
cookies = "PLAY_SESSION=xyz"

[patients_api]
url = "https://patients.example.ru"
login = "bot"
password = "bot-pass"

[booking]
branches_per_page = 8
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30, cfg.InfoClinica.Timeout)
	assert.Equal(t, "PLAY_SESSION=xyz", cfg.InfoClinica.Cookies)
	assert.Equal(t, 8, cfg.Booking.BranchesPerPage)
	assert.Equal(t, 5, cfg.Booking.DoctorsPerPage)
	assert.Equal(t, 14, cfg.Booking.DaysAhead)
	assert.Equal(t, 30, cfg.Booking.SlotMinutes)
	assert.Equal(t, 86400, cfg.Session.TTL)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("INFOCLINICA_BASE_URL", "https://medscan-t.infoclinica.ru")
	t.Setenv("SESSION_TTL", "600")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "https://medscan-t.infoclinica.ru", cfg.InfoClinica.BaseURL)
	assert.Equal(t, 600, cfg.Session.TTL)
}

func TestLoad_MissingBotToken(t *testing.T) {
	content := `
[server]
http_port = 8080

[database]
host = "localhost"
port = 5432
user = "clinic"
dbname = "clinicbot"
`
	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram bot token is required")
}

func TestDatabaseConfig_DSNAndURL(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "clinic", Password: "p@ss",
		DBName: "clinicbot", SSLMode: "disable",
	}

	assert.Equal(t, "host=db port=5432 user=clinic password=p@ss dbname=clinicbot sslmode=disable", d.DSN())
	assert.Equal(t, "postgres://clinic:p%40ss@db:5432/clinicbot?sslmode=disable", d.URL())
}
