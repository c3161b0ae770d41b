package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAnswers(t *testing.T, lines string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(p, []byte(lines), 0o644))
	return p
}

func TestRun_SingleGame(t *testing.T) {
	t.Parallel()

	path := writeAnswers(t, "crane\nslate\ntrace\n")
	var out bytes.Buffer
	err := run(context.Background(), []string{"-answers", path, "-answer", "slate"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "1  crane  --g-g  2 left\n2  slate  ggggg  0 left\nsolved slate in 2\n", out.String())
}

func TestRun_Batch(t *testing.T) {
	t.Parallel()

	path := writeAnswers(t, "crane\nslate\ntrace\n")
	var out bytes.Buffer
	err := run(context.Background(), []string{"-answers", path, "-limit", "2", "-quiet", "-workers", "2"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "games 2  wins 2 (100.0%)")
	assert.Contains(t, out.String(), "  1: 1\n")
	assert.Contains(t, out.String(), "  2: 1\n")
}

func TestRun_Daily(t *testing.T) {
	t.Parallel()

	path := writeAnswers(t, "crane\nslate\ntrace\n")
	var out bytes.Buffer
	err := run(context.Background(), []string{"-answers", path, "-daily", "2026-10-19"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "daily 2026-10-19\n")
	assert.Contains(t, out.String(), "solved")
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	_, err := parseFlags([]string{"-answer", "slate", "-daily", "today"})
	assert.Error(t, err)
	_, err = parseFlags([]string{"-limit", "-1"})
	assert.Error(t, err)
	_, err = parseFlags([]string{"-bogus"})
	assert.Error(t, err)

	f, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, f.workers)
	assert.Equal(t, 6, f.rows)
}
