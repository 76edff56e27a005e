// Package clipboard holds the cut/copy payload shared by the panes and the
// directory tree, optionally mirrored to the system clipboard as a list of
// file URLs.
package clipboard

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"filemanager/internal/fsmodel"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"
)

// Payload is the captured selection and how it should be applied on paste.
type Payload struct {
	Paths []string
	Mode  fsmodel.TransferMode
}

// System is the host clipboard. atotto/clipboard satisfies it via Host.
type System interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Host returns the process's system clipboard, or nil when none is
// available (no xclip/xsel/wl-clipboard, headless session).
func Host() System {
	if clipboard.Unsupported {
		return nil
	}
	return hostClipboard{}
}

type hostClipboard struct{}

func (hostClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (hostClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Board is the application clipboard. It is owned by the UI loop.
type Board struct {
	payload   *Payload
	system    System
	observers []func(p Payload, ok bool)

	// seen is the last system clipboard text the board wrote or read.
	seen string
}

// New creates an empty board. sys may be nil to keep the board process-local.
func New(sys System) *Board {
	return &Board{system: sys}
}

// Subscribe registers fn to be called after every change of the payload.
func (b *Board) Subscribe(fn func(p Payload, ok bool)) {
	b.observers = append(b.observers, fn)
}

// Set replaces the payload. An empty path list clears the board.
func (b *Board) Set(p Payload) {
	if len(p.Paths) == 0 {
		b.Clear()
		return
	}
	p.Paths = slices.Clone(p.Paths)
	b.payload = &p
	if b.system != nil {
		text := EncodeURIList(p.Paths)
		if err := b.system.WriteAll(text); err != nil {
			log.WithError(err).Warn("clipboard: mirror to system clipboard failed")
			// Whatever is there now predates this payload.
			text, _ = b.system.ReadAll()
		}
		b.seen = text
	}
	b.notify()
}

// Clear empties the board.
func (b *Board) Clear() {
	if b.payload == nil {
		return
	}
	b.payload = nil
	b.notify()
}

// Payload returns a copy of the current payload.
func (b *Board) Payload() (Payload, bool) {
	if b.payload == nil {
		return Payload{}, false
	}
	return Payload{Paths: slices.Clone(b.payload.Paths), Mode: b.payload.Mode}, true
}

// HasPaths reports whether paste has anything to apply.
func (b *Board) HasPaths() bool {
	return b.payload != nil && len(b.payload.Paths) > 0
}

// Sync follows the system clipboard. A file URL list another program
// placed there is adopted; text that decodes to the current paths keeps the
// current transfer mode, anything else foreign is taken as a Copy. New text
// that holds no file URLs clears the board. A failed read changes nothing.
// It reports whether the payload changed.
func (b *Board) Sync() bool {
	if b.system == nil {
		return false
	}
	text, err := b.system.ReadAll()
	if err != nil {
		log.WithError(err).Debug("clipboard: read system clipboard")
		return false
	}
	if text == b.seen {
		return false
	}
	b.seen = text
	paths := DecodeURIList(text)
	if len(paths) == 0 {
		if b.payload == nil {
			return false
		}
		log.Debug("clipboard: system clipboard holds no files, clearing")
		b.Clear()
		return true
	}
	if b.payload != nil && slices.Equal(paths, b.payload.Paths) {
		return false
	}
	b.payload = &Payload{Paths: paths, Mode: fsmodel.Copy}
	b.notify()
	return true
}

func (b *Board) notify() {
	p, ok := b.Payload()
	for _, fn := range b.observers {
		fn(p, ok)
	}
}

// EncodeURIList renders paths as newline-separated file:// URLs.
func EncodeURIList(paths []string) string {
	lines := make([]string, 0, len(paths))
	for _, p := range paths {
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
		lines = append(lines, u.String())
	}
	return strings.Join(lines, "\n")
}

// DecodeURIList extracts absolute local paths from a uri-list. Comment lines
// and non-file URLs are skipped; a text that is not a uri-list yields nil.
func DecodeURIList(text string) []string {
	var paths []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u, err := url.Parse(line)
		if err != nil || u.Scheme != "file" || u.Path == "" {
			return nil
		}
		if u.Host != "" && u.Host != "localhost" {
			return nil
		}
		paths = append(paths, filepath.FromSlash(u.Path))
	}
	return paths
}
