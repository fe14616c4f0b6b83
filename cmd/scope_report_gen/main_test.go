package main

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"scopereport/internal/errors"
	"scopereport/internal/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"REPORT_OUTPUT", "REPORT_FORMATS", "REPORT_SOURCE", "PORT", "DATABASE_URL", "LOG_LEVEL", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func TestRunWritesDefaultReport(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &stdout, &stderr))

	assert.Equal(t, "Saved: "+scope.DefaultFileName+"\n", stdout.String())
	zr, err := zip.OpenReader(filepath.Join(dir, scope.DefaultFileName))
	require.NoError(t, err)
	zr.Close()
}

func TestRunIgnoresServerPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "abc")
	out := filepath.Join(t.TempDir(), "x.docx")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-out", out}, &stdout, &stderr))

	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestRunFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("REPORT_OUTPUT", filepath.Join(dir, "env.docx"))
	t.Setenv("REPORT_FORMATS", "xlsx")

	var stdout, stderr bytes.Buffer
	out := filepath.Join(dir, "flag.md")
	require.NoError(t, run(context.Background(), []string{"-out", out, "-format", "md"}, &stdout, &stderr))

	assert.Equal(t, "Saved: "+out+"\n", stdout.String())
	_, err := os.Stat(filepath.Join(dir, "env.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunUsageErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"stray argument", []string{"extra"}},
		{"unknown format", []string{"-format", "pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeConfigInvalid))
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRunMissingDirectoryFails(t *testing.T) {
	clearEnv(t)
	out := filepath.Join(t.TempDir(), "missing", "report.docx")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-out", out}, &stdout, &stderr)
	require.Error(t, err)
	assert.False(t, errors.Is(err, errors.CodeConfigInvalid))
	assert.True(t, errors.Is(err, errors.CodeIOError))
}
