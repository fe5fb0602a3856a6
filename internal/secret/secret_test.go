package secret

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgpick/pgpick/internal/psql"
	"github.com/pgpick/pgpick/internal/testutil"
)

func TestParseConnString_AllKeys(t *testing.T) {
	cfg := ParseConnString("host=db.internal;port=5433;user=app;password=pw;dbname=orders", psql.ConnConfig{})

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, "5433", cfg.Port)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, "orders", cfg.Database)
}

func TestParseConnString_CaseFoldedKeys(t *testing.T) {
	cfg := ParseConnString("HOST=h;DbName=d", psql.ConnConfig{})
	assert.Equal(t, "h", cfg.Host)
	assert.Equal(t, "d", cfg.Database)
}

func TestParseConnString_EmptyValueKeepsDefault(t *testing.T) {
	defaults := psql.ConnConfig{Host: "localhost", Port: "5432"}
	cfg := ParseConnString("host=;port=6432", defaults)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "6432", cfg.Port)
}

func TestParseConnString_UnknownKeysIgnored(t *testing.T) {
	cfg := ParseConnString("sslmode=require;host=h", psql.ConnConfig{})
	assert.Equal(t, "h", cfg.Host)
}

func fakeSecretCmd(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "getsecret")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestFetch_ParsesFirstLine(t *testing.T) {
	cmd := fakeSecretCmd(t, `printf 'host=h;user=u;password=p;dbname=d\nignored\n'`)

	cfg, err := Fetch(context.Background(), cmd, psql.ConnConfig{Port: "5432"}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "h", cfg.Host)
	assert.Equal(t, "u", cfg.User)
	assert.Equal(t, "p", cfg.Password)
	assert.Equal(t, "d", cfg.Database)
	assert.Equal(t, "5432", cfg.Port)
}

func TestFetch_CommandFailure(t *testing.T) {
	cmd := fakeSecretCmd(t, `echo "access denied" >&2; exit 3`)

	_, err := Fetch(context.Background(), cmd, psql.ConnConfig{}, testutil.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestFetch_EmptyCommand(t *testing.T) {
	_, err := Fetch(context.Background(), "  ", psql.ConnConfig{}, testutil.NewTestLogger(t))
	require.Error(t, err)
}
