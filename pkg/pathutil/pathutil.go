// Package pathutil provides utilities for safe path handling and file naming.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// keySeparator replaces the ":" used in scoped storage keys, which is not
// portable in file names.
const keySeparator = "__"

var (
	validKey     = regexp.MustCompile(`^[A-Za-z0-9_.:-]+$`)
	slugStripper = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// ValidateConfigPath validates a configuration or catalog file path.
// Config files are expected to be YAML files.
func ValidateConfigPath(path string) (string, error) {
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("path contains directory traversal pattern: %s", path)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	if ext != ".yaml" && ext != ".yml" {
		return "", fmt.Errorf("config file must have .yaml or .yml extension, got %s", ext)
	}

	return absPath, nil
}

// ValidateOutputPath validates an output file path for reports.
// The parent directory must already exist.
func ValidateOutputPath(path string) (string, error) {
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("path contains directory traversal pattern: %s", path)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}

	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", fmt.Errorf("parent directory does not exist: %s", dir)
	}

	return absPath, nil
}

// JoinAndValidate safely joins path components and ensures the result stays
// inside baseDir.
func JoinAndValidate(baseDir string, elems ...string) (string, error) {
	for _, elem := range elems {
		if strings.Contains(elem, "..") {
			return "", fmt.Errorf("path element contains directory traversal: %s", elem)
		}
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("getting absolute base directory: %w", err)
	}

	absJoined, err := filepath.Abs(filepath.Join(append([]string{baseDir}, elems...)...))
	if err != nil {
		return "", fmt.Errorf("getting absolute joined path: %w", err)
	}

	if !within(absJoined, absBase) {
		return "", fmt.Errorf("joined path %s is not within base directory %s", absJoined, baseDir)
	}

	return absJoined, nil
}

// IsWithinDirectory checks if a path is within a specific directory.
func IsWithinDirectory(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}

	return within(absPath, absDir), nil
}

// KeyFileName maps a storage key such as "assessmentResults:<id>" to the
// JSON file holding its value.
func KeyFileName(key string) (string, error) {
	if !validKey.MatchString(key) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return strings.ReplaceAll(key, ":", keySeparator) + ".json", nil
}

// KeyFromFileName reverses KeyFileName. ok is false for files that are not
// storage values.
func KeyFromFileName(name string) (key string, ok bool) {
	if !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
		return "", false
	}
	return strings.ReplaceAll(strings.TrimSuffix(name, ".json"), keySeparator, ":"), true
}

// Slug reduces a display name to a file-name friendly token, e.g.
// "Acme Pharma, Inc." becomes "Acme_Pharma_Inc".
func Slug(name string) string {
	s := strings.Trim(slugStripper.ReplaceAllString(name, "_"), "_")
	if s == "" {
		return "Company"
	}
	return s
}

func within(absPath, absDir string) bool {
	if absPath == absDir {
		return true
	}
	if !strings.HasSuffix(absDir, string(filepath.Separator)) {
		absDir += string(filepath.Separator)
	}
	return strings.HasPrefix(absPath, absDir)
}
