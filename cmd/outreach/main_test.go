package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `id,username,full_name,age,gender,email,country,category,followers,engagement,avg_likes,avg_comments,follower_growth_rate
259,riley259,Riley Brown,22,male,riley259@example.com,India,Fitness,25000,0.12,2700,300,0.08
`

func clearSecrets(t *testing.T) {
	for _, name := range []string{
		"GEMINI_API_KEY", "gemini_api_key", "GENAI_API_KEY",
		"EMAIL_ADDRESS", "email_address", "EMAIL_PASSWORD", "email_password",
		"SMTP_HOST", "SMTP_PORT", "APP_ENVIRONMENT",
	} {
		t.Setenv(name, "")
	}
}

func writeTestConfig(t *testing.T, dataPath string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "data:\n  path: " + dataPath + "\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCmd_RunsWithoutAIKey(t *testing.T) {
	clearSecrets(t)
	dataPath := filepath.Join(t.TempDir(), "influencers.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(testCSV), 0o600))

	out := &bytes.Buffer{}
	cmd := newRootCmd(strings.NewReader("Fitness\n1\n"))
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--config", writeTestConfig(t, dataPath)})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Available Categories: Fitness")
	assert.Contains(t, out.String(), "AI API key is not configured")
}

func TestRootCmd_DataFlagOverridesConfig(t *testing.T) {
	clearSecrets(t)
	dataPath := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(testCSV), 0o600))

	out := &bytes.Buffer{}
	cmd := newRootCmd(strings.NewReader(""))
	cmd.SetOut(out)
	cmd.SetArgs([]string{
		"--config", writeTestConfig(t, "does-not-exist.csv"),
		"--data", dataPath,
		"--category", "Fitness",
		"--k", "1",
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Successfully loaded 1 records from "+dataPath)
	assert.NotContains(t, out.String(), "Enter the category")
}

func TestRootCmd_MissingDataFileFails(t *testing.T) {
	clearSecrets(t)

	out := &bytes.Buffer{}
	cmd := newRootCmd(strings.NewReader(""))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", writeTestConfig(t, filepath.Join(t.TempDir(), "missing.csv"))})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FILE_NOT_ACCESSIBLE")
	assert.Contains(t, out.String(), "Run aborted")
}

func TestRootCmd_RejectsNonPositiveK(t *testing.T) {
	clearSecrets(t)

	cmd := newRootCmd(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--k", "0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--k must be a positive integer")
}

func TestRootCmd_BadConfigFile(t *testing.T) {
	clearSecrets(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("genai:\n  temperature: 9\n"), 0o600))

	cmd := newRootCmd(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIGURATION_INVALID")
}

func TestRootCmd_RejectsUnknownLogLevel(t *testing.T) {
	clearSecrets(t)
	dataPath := filepath.Join(t.TempDir(), "influencers.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(testCSV), 0o600))

	out := &bytes.Buffer{}
	cmd := newRootCmd(strings.NewReader(""))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", writeTestConfig(t, dataPath), "--log-level", "verbose"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIGURATION_INVALID")
	assert.Contains(t, err.Error(), `got "verbose"`)
	assert.NotContains(t, out.String(), "Successfully loaded")
}
