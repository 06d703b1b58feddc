package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `project: codecred
licenseKey: ABCD-1234-EFGH
wallet: 1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2
baseRate: 0.00001
contributors:
  - name: alice
    wallet: 1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2
  - name: bob
`

func TestParseValidManifest(t *testing.T) {
	m, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "codecred", m.Project)
	assert.Equal(t, "ABCD-1234-EFGH", m.LicenseKey)
	assert.Equal(t, 0.00001, m.BaseRate)
	require.Len(t, m.Contributors, 2)
	assert.Equal(t, "alice", m.Contributors[0].Name)
	assert.Empty(t, m.Contributors[1].Wallet)
	assert.True(t, m.Valid())
}

func TestParseRejectsShortLicenseKey(t *testing.T) {
	yaml := strings.Replace(validYAML, "ABCD-1234-EFGH", "short", 1)

	_, err := Parse([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid manifest")
}

func TestParseRejectsBadWallet(t *testing.T) {
	yaml := strings.Replace(validYAML, "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2", "not-a-wallet", 1)

	_, err := Parse([]byte(yaml))
	require.Error(t, err)
}

func TestParseRejectsMissingProject(t *testing.T) {
	yaml := `licenseKey: ABCD-1234-EFGH
wallet: 1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2
`
	_, err := Parse([]byte(yaml))
	require.Error(t, err)
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse([]byte(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".codecred.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "codecred", m.Project)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValid(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		want     bool
	}{
		{"valid", Manifest{Project: "p", LicenseKey: "12345678"}, true},
		{"short key", Manifest{Project: "p", LicenseKey: "1234567"}, false},
		{"no project", Manifest{LicenseKey: "12345678"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.manifest.Valid())
		})
	}
}

func TestInfo(t *testing.T) {
	m := Manifest{Project: "demo", LicenseKey: "12345678"}
	info := m.Info()

	assert.Contains(t, info, "Project: demo")
	assert.Contains(t, info, "Validation Status: Valid")

	m.LicenseKey = "short"
	assert.Contains(t, m.Info(), "Validation Status: Invalid")
}
