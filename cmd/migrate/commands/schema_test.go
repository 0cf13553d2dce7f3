package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ecommerce-platform/internal/infrastructure/database/postgres"
)

func TestDropRequiresConfirmation(t *testing.T) {
	confirmDrop = false

	err := dropCmd.RunE(dropCmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"up", "status", "seed", "drop", "hash-password"} {
		assert.True(t, names[name], name)
	}
}

func TestPrintTableInfoMarksMissing(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	info := []postgres.TableInfo{{Name: "users", Rows: 3}}
	require.NoError(t, printTableInfo(cmd, postgres.DefaultSchema(), info))

	text := out.String()
	assert.Regexp(t, `users\s+3`, text)
	assert.Regexp(t, `analytics\s+missing`, text)
	assert.NotRegexp(t, `users\s+missing`, text)
}

func TestHashPasswordPrintsHash(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")

	var out bytes.Buffer
	hashCmd.SetOut(&out)
	t.Cleanup(func() { hashCmd.SetOut(nil) })

	require.NoError(t, hashCmd.RunE(hashCmd, []string{"hunter2"}))

	hash := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"), hash)
}
