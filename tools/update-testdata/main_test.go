package main

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindGoldenPackages(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "go.mod"))
	touch(t, filepath.Join(root, "generate", "testdata", "array.txtar"))
	touch(t, filepath.Join(root, "generate", "testdata", "nested", "testdata", "x.txtar"))
	touch(t, filepath.Join(root, "render", "testdata", "notes.txt"))
	touch(t, filepath.Join(root, "_examples", "repo", "testdata", "a.txtar"))
	touch(t, filepath.Join(root, ".git", "testdata", "a.txtar"))
	touch(t, filepath.Join(root, "a", "b", "testdata", "c.txtar"))

	dirs, err := findGoldenPackages(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"generate", filepath.Join("a", "b")}, dirs)
}

func TestFindGoldenPackagesOutsideModule(t *testing.T) {
	_, err := findGoldenPackages(t.TempDir())
	assert.Error(t, err)
}

func TestGoldenTestPattern(t *testing.T) {
	args := goTestArgs()
	assert.Contains(t, args, "-update")
	assert.Contains(t, args, goldenTest)

	re := regexp.MustCompile(goldenTest)

	testCases := []struct {
		testName string
		want     bool
	}{
		{"TestGolden", true},
		{"TestGoldenWithClang", false},
		{"TestGoldenRun", false},
		{"TestGenerateGolden", false},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Equal(t, tc.want, re.MatchString(tc.testName))
		})
	}
}
