package fsrouter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/goliatone/go-gentpl/pkg/diag"
	"github.com/goliatone/go-gentpl/pkg/output"
)

// Router implements output.Router on the local filesystem. Writes go to a
// temporary sibling first and are moved into place, so readers never see a
// half written destination.
type Router struct {
	baseDir         string
	dryRun          bool
	defaultEncoding string
	logger          *zap.Logger
}

// Ensure the implementation satisfies the public interfaces.
var (
	_ output.Router    = (*Router)(nil)
	_ output.Inspector = (*Router)(nil)
)

// New constructs a Router from pre-resolved options.
func New(options output.RouterOptions) *Router {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		baseDir:         options.BaseDir,
		dryRun:          options.DryRun,
		defaultEncoding: options.DefaultEncoding,
		logger:          logger,
	}
}

// Persist writes text to the destination, replacing any existing file.
func (r *Router) Persist(ctx context.Context, text string, desc output.Descriptor, sink *diag.Diagnostics) {
	r.persist(ctx, text, desc, sink, false)
}

// PersistIfAbsent writes text only when nothing exists at the destination.
func (r *Router) PersistIfAbsent(ctx context.Context, text string, desc output.Descriptor, sink *diag.Diagnostics) {
	r.persist(ctx, text, desc, sink, true)
}

// Exists reports whether the resolved destination is already on disk.
func (r *Router) Exists(ctx context.Context, desc output.Descriptor) (bool, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return false, err
		}
	}
	path := r.resolve(desc)
	if path == "" {
		return false, errors.New("output: destination path is required")
	}
	return pathExists(path)
}

func (r *Router) persist(ctx context.Context, text string, desc output.Descriptor, sink *diag.Diagnostics, ifAbsent bool) {
	if sink == nil {
		sink = &diag.Diagnostics{}
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			sink.Errorf("output: %v", err)
			return
		}
	}

	path := r.resolve(desc)
	if path == "" {
		sink.Errorf("output: destination path is required")
		return
	}

	if ifAbsent {
		exists, err := pathExists(path)
		if err != nil {
			sink.Errorf("output: stat %s: %v", path, err)
			return
		}
		if exists {
			r.logger.Debug("destination exists, skipping write", zap.String("path", path))
			return
		}
	}

	payload, err := r.encode(text, desc)
	if err != nil {
		sink.Errorf("output: %s: %v", path, err)
		return
	}

	if r.dryRun {
		r.logger.Info("dry run: would write file",
			zap.String("path", path),
			zap.Int("bytes", len(payload)),
			zap.Bool("if_absent", ifAbsent),
		)
		return
	}

	if err := writeAtomic(path, payload, desc.FileMode(), ifAbsent); err != nil {
		if ifAbsent && errors.Is(err, fs.ErrExist) {
			r.logger.Debug("destination appeared concurrently, skipping write", zap.String("path", path))
			return
		}
		r.logger.Warn("write failed", zap.String("path", path), zap.Error(err))
		sink.Errorf("output: write %s: %v", path, err)
		return
	}

	r.logger.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(payload)))
}

func (r *Router) resolve(desc output.Descriptor) string {
	path := desc.Resolve()
	if path == "" || filepath.IsAbs(path) || desc.Directory != "" || r.baseDir == "" {
		return path
	}
	return filepath.Join(r.baseDir, path)
}

func (r *Router) encode(text string, desc output.Descriptor) ([]byte, error) {
	text = normalizeLineEndings(text, desc.LineEnding)

	sanitized, err := sanitize(text, desc.Sanitize)
	if err != nil {
		return nil, err
	}

	encoding := desc.NormalizedEncoding()
	if desc.Encoding == "" && r.defaultEncoding != "" {
		encoding = output.Descriptor{Encoding: r.defaultEncoding}.NormalizedEncoding()
	}
	return encodeText(sanitized, encoding)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// writeAtomic writes payload to a temp file in the destination directory and
// moves it into place. With exclusive set the final step is a hard link, which
// fails with fs.ErrExist instead of replacing an existing destination.
func writeAtomic(path string, payload []byte, mode fs.FileMode, exclusive bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}

	if exclusive {
		return os.Link(tmpName, path)
	}
	return os.Rename(tmpName, path)
}
