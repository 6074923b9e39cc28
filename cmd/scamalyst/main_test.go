package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naomili-code/scamalyst/internal/domain/event"
	"github.com/naomili-code/scamalyst/pkg/auth"
	"github.com/naomili-code/scamalyst/pkg/events"
	"github.com/naomili-code/scamalyst/pkg/testutil"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestMessageExample(t *testing.T) {
	out, err := runCLI(t, "", "-example", "message")

	require.NoError(t, err)
	assert.Contains(t, out, "Score:    8.0 / 10 (80%)")
	assert.Contains(t, out, "Verdict:  Likely Scam")
	assert.Contains(t, out, "Phishing / Credential Theft")
	assert.Contains(t, out, "What to do:")
}

func TestMessageJSONFromStdin(t *testing.T) {
	out, err := runCLI(t, testutil.BenignMessage, "-json", "message", "-")

	require.NoError(t, err)
	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Likely Safe", resp["verdict"])
}

func TestWebsite(t *testing.T) {
	out, err := runCLI(t, "", "website", testutil.LookalikeURL)

	require.NoError(t, err)
	assert.Contains(t, out, "Verdict:  Medium Risk")
	assert.Contains(t, out, "Mode:     url")
	assert.Contains(t, out, "[Security +2]")
}

func TestAI(t *testing.T) {
	out, err := runCLI(t, "", "ai")

	require.NoError(t, err)
	assert.Contains(t, out, "No text provided")
}

func TestUsageErrors(t *testing.T) {
	_, err := runCLI(t, "")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "", "translate", "hi")
	assert.ErrorIs(t, err, errUsage)
}

func TestToken(t *testing.T) {
	out, err := runCLI(t, "", "token", "-secret", "cli-secret", "-client", "ops", "-roles", "analyst, inference")
	require.NoError(t, err)

	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: "cli-secret", Issuer: "scamalyst"})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.ClientID)
	assert.Equal(t, []string{auth.RoleAnalyst, auth.RoleInference}, claims.Roles)

	_, err = runCLI(t, "", "token", "-secret", "cli-secret")
	assert.Error(t, err, "client id is required")
}

func TestCertsAndKeygen(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, "", "certs", "-out", dir, "scamalyst.local")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "server.pem"))

	_, err = runCLI(t, "", "keygen", "-out", dir)
	require.NoError(t, err)
	info, err := os.Stat(filepath.Join(dir, "jwt-private.pem"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := runCLI(t, "", "token", "-private-key", filepath.Join(dir, "jwt-private.pem"), "-client", "rsa")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))
}

func TestWatchRequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	_, err := runCLI(t, "", "watch")

	assert.ErrorContains(t, err, "no brokers configured")
}

func TestPrintEnvelope(t *testing.T) {
	var out bytes.Buffer
	c := &cli{stdout: &out}
	env := events.Envelope{
		Type:        event.EventTypeAnalysisCompleted,
		AggregateID: testutil.TestAnalysisID1.String(),
		OccurredAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Payload:     json.RawMessage(`{"score":8}`),
	}

	require.NoError(t, c.printEnvelope(env, true))
	assert.Empty(t, out.String())

	require.NoError(t, c.printEnvelope(env, false))
	assert.Contains(t, out.String(), "2025-03-01T12:00:00Z")
	assert.Contains(t, out.String(), `{"score":8}`)
}
