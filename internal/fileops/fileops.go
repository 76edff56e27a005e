// Package fileops runs the batch file operations behind the clipboard,
// delete and new-folder actions. Failures are aggregated into a single
// BatchError so the UI can notify once per batch.
package fileops

import (
	"context"
	"fmt"

	"filemanager/internal/clipboard"
	"filemanager/internal/fsmodel"
	"filemanager/internal/telemetry"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// BatchError aggregates the per-entry failures of one batch.
type BatchError struct {
	Op    string
	Total int
	Errs  []error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: %d of %d entries failed", e.Op, len(e.Errs), e.Total)
}

// Unwrap exposes the per-entry errors to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	return e.Errs
}

func batchErr(op string, total int, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &BatchError{Op: op, Total: total, Errs: errs}
}

// Transferer is the part of the filesystem model Paste needs.
type Transferer interface {
	Transfer(src, destDir string, mode fsmodel.TransferMode) (string, error)
}

// Paste applies payload to destDir. Every entry is attempted; the returned
// slice holds the new paths of those that succeeded.
func Paste(ctx context.Context, m Transferer, p clipboard.Payload, destDir string) ([]string, error) {
	_, span := telemetry.Start(ctx, "fileops.paste",
		attribute.String("filemanager.dest", destDir),
		attribute.String("filemanager.mode", p.Mode.String()),
		attribute.Int("filemanager.count", len(p.Paths)),
	)

	var (
		done []string
		errs []error
	)
	for _, src := range p.Paths {
		target, err := m.Transfer(src, destDir, p.Mode)
		if err != nil {
			log.WithFields(log.Fields{"op": "paste", "path": src, "dest": destDir, "mode": p.Mode.String()}).
				WithError(err).Warn("transfer failed")
			errs = append(errs, err)
			continue
		}
		done = append(done, target)
	}
	err := batchErr("paste", len(p.Paths), errs)
	telemetry.End(span, err)
	log.WithFields(log.Fields{"op": "paste", "dest": destDir, "mode": p.Mode.String()}).
		Infof("pasted %d of %d entries", len(done), len(p.Paths))
	return done, err
}

// Mkdirer is the part of the filesystem model NewFolder needs.
type Mkdirer interface {
	Mkdir(parent, name string) (string, error)
}

// NewFolder creates a folder named label in dir, suffixing the name when it
// is already taken, and returns the created path.
func NewFolder(ctx context.Context, m Mkdirer, dir, label string) (string, error) {
	_, span := telemetry.Start(ctx, "fileops.mkdir", attribute.String("filemanager.dest", dir))
	path, err := m.Mkdir(dir, label)
	telemetry.End(span, err)
	fields := log.Fields{"op": "mkdir", "dest": dir}
	if err != nil {
		log.WithFields(fields).WithError(err).Warn("new folder failed")
		return "", err
	}
	log.WithFields(fields).WithField("path", path).Info("new folder")
	return path, nil
}
