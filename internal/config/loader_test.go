package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearPGEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"PG_HOST", "PG_PORT", "PG_USER", "PG_PASSWORD", "PG_DATABASE", "PSQL_PATH"} {
		t.Setenv(v, "")
		require.NoError(t, os.Unsetenv(v))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearPGEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPsqlPath, cfg.PsqlPath)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoad_EnvVars(t *testing.T) {
	clearPGEnv(t)
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_PORT", "5433")
	t.Setenv("PG_USER", "app")
	t.Setenv("PG_PASSWORD", "pw")
	t.Setenv("PG_DATABASE", "orders")
	t.Setenv("PSQL_PATH", "/opt/pg/bin/psql")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, "5433", cfg.Port)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, "orders", cfg.Database)
	assert.Equal(t, "/opt/pg/bin/psql", cfg.PsqlPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearPGEnv(t)
	path := filepath.Join(t.TempDir(), "pgpick.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: filehost\nport: \"5432\"\noutput: json\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "filehost", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearPGEnv(t)
	t.Setenv("PG_HOST", "envhost")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--host=flaghost"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "flaghost", cfg.Host)
	// Unchanged flags don't clobber lower layers.
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestConnConfig_Complete(t *testing.T) {
	cfg := &Config{Host: "h", Port: "5432", User: "u", Password: "p", Database: "d", PsqlPath: "psql"}

	conn, err := cfg.ConnConfig()
	require.NoError(t, err)
	assert.Equal(t, "h", conn.Host)
	assert.Equal(t, "d", conn.Database)
	assert.Equal(t, "psql", conn.BinPath)
}

func TestConnConfig_MissingPassword(t *testing.T) {
	cfg := &Config{Host: "h", Port: "5432", User: "u", Database: "d"}

	_, err := cfg.ConnConfig()
	require.Error(t, err)

	var missing *MissingParamError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "password", missing.Param)
	assert.Contains(t, err.Error(), "password")
}

func TestConnConfig_FirstMissingNamed(t *testing.T) {
	_, err := (&Config{}).ConnConfig()
	var missing *MissingParamError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "host", missing.Param)
}
