package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/auth"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestToken(t *testing.T) {
	t.Setenv("LEDGER_JWT_SECRET", "ledgerctl-test-secret")
	t.Setenv("LEDGER_JWT_ISSUER", "ledgerctl-test")
	tenantID := uuid.New()
	userID := uuid.New()

	out, err := run(t, "token", "--tenant", tenantID.String(), "--user", userID.String())
	require.NoError(t, err)

	svc, err := auth.NewJWTService(config.JWTConfig{Secret: "ledgerctl-test-secret", Issuer: "ledgerctl-test"})
	require.NoError(t, err)
	claims, err := svc.Validate(strings.TrimSpace(out))
	require.NoError(t, err)

	gotTenant, err := claims.TenantUUID()
	require.NoError(t, err)
	gotUser, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)
	assert.Equal(t, userID, gotUser)
}

func TestToken_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("LEDGER_JWT_SECRET", "")
		_, err := run(t, "token", "--tenant", uuid.NewString())
		assert.ErrorIs(t, err, auth.ErrMissingSecret)
	})
	t.Run("bad tenant", func(t *testing.T) {
		t.Setenv("LEDGER_JWT_SECRET", "ledgerctl-test-secret")
		_, err := run(t, "token", "--tenant", "acme")
		assert.ErrorContains(t, err, "invalid tenant")
	})
	t.Run("tenant required", func(t *testing.T) {
		_, err := run(t, "token")
		assert.ErrorContains(t, err, "tenant")
	})
}

func TestMigrateCreateAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "migrate", "create", "Add Ledger Groups", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "000001_add_ledger_groups.up.sql")
	assert.FileExists(t, filepath.Join(dir, "000001_add_ledger_groups.down.sql"))

	_, err = run(t, "migrate", "create", "seed tax rates", "--path", dir)
	require.NoError(t, err)

	out, err = run(t, "migrate", "list", "--path", dir)
	require.NoError(t, err)
	assert.Equal(t, "000001 add_ledger_groups\n000002 seed_tax_rates\n", out)
}

func TestMigrateDown_InvalidSteps(t *testing.T) {
	for _, arg := range []string{"zero", "0"} {
		_, err := run(t, "migrate", "down", arg, "--path", t.TempDir())
		assert.ErrorContains(t, err, "invalid step count", arg)
	}
}

func TestReport_RequiresFlags(t *testing.T) {
	_, err := run(t, "report", "gst", "--from", "2026-04-01", "--to", "2026-06-30")
	assert.ErrorContains(t, err, "tenant")

	_, err = run(t, "report", "gst", "--tenant", "not-a-uuid", "--from", "2026-04-01", "--to", "2026-06-30")
	assert.ErrorContains(t, err, "invalid tenant")
}

func TestResolveMigrationsPath(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsPath(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	got, err = resolveMigrationsPath("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, defaultMigrationsPath, filepath.Base(got))
}
