// Command update-testdata rewrites the golden files of every package that
// keeps txtar archives under testdata/.
package main

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rdeusser/enumstr/zappretty"
)

// findGoldenPackages returns the directories below root, relative to it,
// whose testdata directory holds txtar archives. Directories the go tool
// ignores (leading "." or "_") are skipped.
func findGoldenPackages(root string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "finding module root"), "run from the directory holding go.mod")
	}

	var dirs []string

	err := fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return fs.SkipDir
		}

		if name != "testdata" {
			return nil
		}

		archives, err := fs.Glob(os.DirFS(root), filepath.ToSlash(filepath.Join(path, "*.txtar")))
		if err != nil {
			return err
		}

		if len(archives) > 0 {
			dirs = append(dirs, filepath.Dir(path))
		}

		return fs.SkipDir
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking module")
	}

	return dirs, nil
}

// goldenTest selects only the test that honors -update; the golden tests
// that run clang compare against the archives as they are.
const goldenTest = "^TestGolden$"

func goTestArgs() []string {
	return []string{"test", "-timeout", "2m", "-run", goldenTest, ".", "-update"}
}

func updateTestData(ctx context.Context, dir string) error {
	cmd := exec.CommandContext(ctx, "go", goTestArgs()...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return errors.Wrapf(cmd.Run(), "updating %s", dir)
}

func main() {
	cfg := zapcore.EncoderConfig{LevelKey: "level", MessageKey: "msg"}
	logger := zap.New(zapcore.NewCore(zappretty.NewCLIEncoder(cfg), zapcore.Lock(os.Stderr), zapcore.InfoLevel))

	dirs, err := findGoldenPackages(".")
	if err != nil {
		logger.Fatal("finding testdata", zap.Error(err))
	}

	var failed []string

	for _, dir := range dirs {
		logger.Info("updating testdata", zap.String("package", dir))

		if err := updateTestData(context.Background(), dir); err != nil {
			logger.Error("update failed", zap.Error(err))
			failed = append(failed, dir)
		}
	}

	if len(failed) > 0 {
		logger.Fatal("some packages failed to update", zap.Strings("packages", failed))
	}

	logger.Info("successfully updated testdata", zap.Int("packages", len(dirs)))
}
