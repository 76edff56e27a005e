package fileops

import (
	"context"
	"errors"
	"fmt"
	"os"

	"filemanager/internal/fsmodel"
	"filemanager/internal/telemetry"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// ErrNotWritable marks entries skipped because they are read-only.
var ErrNotWritable = errors.New("not writable")

// Answer is the user's reply to a delete confirmation.
type Answer int

const (
	AnswerYes Answer = iota
	AnswerNo
	AnswerYesToAll
)

func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	case AnswerYesToAll:
		return "yes-to-all"
	default:
		return "unknown"
	}
}

// Remover is the part of the filesystem model DeleteBatch needs.
type Remover interface {
	Remove(path string) error
}

// DeleteBatch walks a selection and removes it, pausing whenever a
// confirmation is required:
//   - symlinks are removed unconditionally (the link, never its target);
//   - writable entries need a Yes, unless YesToAll was given earlier or
//     confirmation is disabled;
//   - read-only entries are skipped and reported as failed.
//
// No cancels the rest of the batch.
type DeleteBatch struct {
	model     Remover
	paths     []string
	next      int
	confirm   bool
	yesToAll  bool
	cancelled bool
	pending   string
	removed   []string
	errs      []error
	span      oteltrace.Span
	finished  bool
}

// NewDeleteBatch prepares a batch over paths. When confirm is false every
// writable entry is removed without asking.
func NewDeleteBatch(ctx context.Context, m Remover, paths []string, confirm bool) *DeleteBatch {
	_, span := telemetry.Start(ctx, "fileops.delete", attribute.Int("filemanager.count", len(paths)))
	return &DeleteBatch{
		model:   m,
		paths:   paths,
		confirm: confirm,
		span:    span,
	}
}

// Advance processes entries until one needs confirmation or the batch is
// over. It returns the path awaiting an Answer, or done=true.
func (b *DeleteBatch) Advance() (prompt string, done bool) {
	if b.pending != "" {
		return b.pending, false
	}
	for !b.cancelled && b.next < len(b.paths) {
		path := b.paths[b.next]
		b.next++

		info, err := os.Lstat(path)
		if err != nil {
			b.fail(path, fmt.Errorf("delete %s: %w", path, err))
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			b.remove(path)
			continue
		}
		if !fsmodel.Writable(path) {
			b.fail(path, fmt.Errorf("delete %s: %w", path, ErrNotWritable))
			continue
		}
		if b.confirm && !b.yesToAll {
			b.pending = path
			return path, false
		}
		b.remove(path)
	}
	b.finish()
	return "", true
}

// Answer resolves the pending confirmation. It is a no-op when nothing is
// pending. Call Advance afterwards to continue.
func (b *DeleteBatch) Answer(a Answer) {
	path := b.pending
	if path == "" {
		return
	}
	b.pending = ""
	switch a {
	case AnswerNo:
		b.cancelled = true
		log.WithFields(log.Fields{"op": "delete", "path": path}).Info("delete cancelled")
	case AnswerYesToAll:
		b.yesToAll = true
		b.remove(path)
	default:
		b.remove(path)
	}
}

// Removed returns the paths deleted so far.
func (b *DeleteBatch) Removed() []string {
	return b.removed
}

// Cancelled reports whether the user answered No.
func (b *DeleteBatch) Cancelled() bool {
	return b.cancelled
}

// Err returns the aggregate failure, or nil.
func (b *DeleteBatch) Err() error {
	return batchErr("delete", len(b.paths), b.errs)
}

func (b *DeleteBatch) remove(path string) {
	if err := b.model.Remove(path); err != nil {
		b.fail(path, err)
		return
	}
	b.removed = append(b.removed, path)
}

func (b *DeleteBatch) fail(path string, err error) {
	log.WithFields(log.Fields{"op": "delete", "path": path}).WithError(err).Warn("delete failed")
	b.errs = append(b.errs, err)
}

func (b *DeleteBatch) finish() {
	if b.finished {
		return
	}
	b.finished = true
	b.span.SetAttributes(attribute.Int("filemanager.removed", len(b.removed)))
	telemetry.End(b.span, b.Err())
	log.WithField("op", "delete").Infof("deleted %d of %d entries", len(b.removed), len(b.paths))
}
