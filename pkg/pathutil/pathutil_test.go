package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		errContains string
		wantErr     bool
	}{
		{name: "yaml file", path: "config/gxpassess.yaml"},
		{name: "yml file", path: "catalog.yml"},
		{name: "wrong extension", path: "config.json", wantErr: true, errContains: "extension"},
		{name: "traversal", path: "../secrets.yaml", wantErr: true, errContains: "directory traversal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateConfigPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tmpDir := t.TempDir()

	got, err := ValidateOutputPath(filepath.Join(tmpDir, "report.html"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "report.html"), got)

	_, err = ValidateOutputPath(filepath.Join(tmpDir, "missing", "report.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent directory does not exist")
}

func TestJoinAndValidate(t *testing.T) {
	base := t.TempDir()

	got, err := JoinAndValidate(base, "companyData.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "companyData.json"), got)

	_, err = JoinAndValidate(base, "..", "etc", "passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory traversal")

	got, err = JoinAndValidate(base)
	require.NoError(t, err)
	assert.Equal(t, base, got)
}

func TestIsWithinDirectory(t *testing.T) {
	tests := []struct {
		name string
		path string
		dir  string
		want bool
	}{
		{"inside", "/home/user/data/file.json", "/home/user/data", true},
		{"outside", "/home/user/other/file.json", "/home/user/data", false},
		{"same directory", "/home/user/data", "/home/user/data", true},
		{"prefix sibling", "/home/user/database/file.json", "/home/user/data", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsWithinDirectory(tt.path, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyFileName(t *testing.T) {
	name, err := KeyFileName("assessmentResults:1234-abcd")
	require.NoError(t, err)
	assert.Equal(t, "assessmentResults__1234-abcd.json", name)

	key, ok := KeyFromFileName(name)
	assert.True(t, ok)
	assert.Equal(t, "assessmentResults:1234-abcd", key)

	for _, bad := range []string{"", "../escape", "with space", "a/b"} {
		_, err := KeyFileName(bad)
		assert.Error(t, err, bad)
	}

	_, ok = KeyFromFileName(".tmp-companyData.json")
	assert.False(t, ok)
	_, ok = KeyFromFileName("notes.txt")
	assert.False(t, ok)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "Acme_Pharma_Inc", Slug("Acme Pharma, Inc."))
	assert.Equal(t, "BioGen_2", Slug("  BioGen / 2 "))
	assert.Equal(t, "Company", Slug("!!!"))
}
