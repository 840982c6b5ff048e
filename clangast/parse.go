package clangast

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var (
	ErrParse         = errors.New("unable to parse file")
	ErrClangNotFound = errors.New("clang executable not found")
)

// Parse runs clang over path and returns the root of its AST.
//
// clang recovers from most errors in a header that is parsed without its
// platform SDK (unknown NSInteger), so a non-zero exit is only fatal when no
// AST was written or clang reported a fatal error such as a missing import.
// Recovered diagnostics are logged as warnings.
func Parse(ctx context.Context, path string, cfg Config, logger *zap.Logger) (*Node, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	clang, err := exec.LookPath(cfg.clang())
	if err != nil {
		err = errors.Mark(errors.Wrapf(err, "looking up %q", cfg.clang()), ErrClangNotFound)
		return nil, errors.WithHint(err, "install clang or point --clang (ENUMSTR_CLANG) at it")
	}

	var stdout, stderr bytes.Buffer

	args := cfg.Args(path)
	cmd := exec.CommandContext(ctx, clang, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running clang", zap.String("clang", clang), zap.Strings("args", args))

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "running clang")
	}

	if stdout.Len() == 0 {
		if runErr == nil {
			runErr = errors.New("clang produced no AST")
		}
		return nil, parseError(path, runErr, stderr.String())
	}

	root, err := Decode(&stdout)
	if err != nil {
		return nil, parseError(path, err, stderr.String())
	}

	lines := diagnostics(stderr.String())

	// A fatal error stops clang mid-file, so the AST it wrote is incomplete.
	for _, line := range lines {
		if strings.Contains(line, ": fatal error: ") {
			if runErr == nil {
				runErr = errors.New(line)
			}
			return nil, parseError(path, runErr, stderr.String())
		}
	}

	if runErr != nil {
		for _, line := range lines {
			logger.Warn(line)
		}
	}

	return root, nil
}

func parseError(path string, cause error, diag string) error {
	err := errors.Mark(errors.Wrapf(cause, "parsing %s", path), ErrParse)
	if diag = strings.TrimSpace(diag); diag != "" {
		err = errors.WithDetail(err, diag)
	}
	return err
}

// diagnostics returns the error and warning lines of clang's stderr, without
// the source excerpts and carets that follow them.
func diagnostics(stderr string) []string {
	var lines []string

	for _, line := range strings.Split(stderr, "\n") {
		if strings.Contains(line, ": error: ") || strings.Contains(line, ": fatal error: ") || strings.Contains(line, ": warning: ") {
			lines = append(lines, line)
		}
	}

	return lines
}
