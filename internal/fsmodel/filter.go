package fsmodel

// Predicate decides whether an entry passes a Filtered listing.
type Predicate func(Entry) bool

// Filtered decorates a Lister, keeping only entries accepted by Accept.
type Filtered struct {
	Source Lister
	Accept Predicate
}

// Ensure Filtered implements Lister.
var _ Lister = (*Filtered)(nil)

// NewDirFilter returns the listing used by the directory tree: directories
// only, without the parent link.
func NewDirFilter(src Lister) *Filtered {
	return &Filtered{Source: src, Accept: DirsOnly}
}

// DirsOnly accepts directories (including links to directories) other than "..".
func DirsOnly(e Entry) bool {
	return e.IsDir && !e.IsParent
}

// List implements Lister.
func (f *Filtered) List(dir string) ([]Entry, error) {
	entries, err := f.Source.List(dir)
	if err != nil {
		return nil, err
	}
	out := entries[:0:0]
	for _, e := range entries {
		if f.Accept == nil || f.Accept(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
