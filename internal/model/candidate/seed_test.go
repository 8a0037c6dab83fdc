package candidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefault(t *testing.T) {
	entries := Seed()
	require.Len(t, entries, 64)
	assert.Equal(t, "20actalentaccommodation@actalentservices.com", entries[0].Email)
	assert.Equal(t, "2026-02-05 01:36:15", entries[0].AppliedAt)
	assert.Equal(t, "waranyac2531@hotmail.com", entries[63].Email)
}

func TestParseSeedRejectsMissingEmail(t *testing.T) {
	_, err := ParseSeed([]byte("candidates:\n  - appliedAt: \"2026-01-01\"\n"))
	assert.Error(t, err)
}

func TestParseSeedRejectsMalformedYAML(t *testing.T) {
	_, err := ParseSeed([]byte("candidates: [this is: not valid"))
	assert.Error(t, err)
}

func TestLoadSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "candidates:\n  - email: a@b.com\n    appliedAt: \"2026-03-01 10:00:00\"\n  - email: broken\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	entries, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, []SeedEntry{
		{Email: "a@b.com", AppliedAt: "2026-03-01 10:00:00"},
		{Email: "broken"},
	}, entries)
}

func TestLoadSeedEmptyPathUsesEmbedded(t *testing.T) {
	entries, err := LoadSeed("")
	require.NoError(t, err)
	assert.Equal(t, Seed(), entries)
}

func TestLoadSeedMissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
