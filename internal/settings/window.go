package settings

import "errors"

// Persisted keys. The names are shared with the desktop build's settings.
const (
	KeyGeometry             = "Geometry"
	KeyShowStatusBar        = "ShowStatusBar"
	KeyShowToolBar          = "ShowToolBar"
	KeyMainSplitterSizes    = "MainSplitterSizes"
	KeyLeftPaneActive       = "LeftPaneActive"
	KeyLeftPanePath         = "LeftPanePath"
	KeyLeftPaneFileListHdr  = "LeftPaneFileListHeader"
	KeyLeftPaneViewMode     = "LeftPaneViewMode"
	KeyRightPanePath        = "RightPanePath"
	KeyRightPaneFileListHdr = "RightPaneFileListHeader"
	KeyRightPaneViewMode    = "RightPaneViewMode"
	KeyShowHidden           = "ShowHidden"
)

// ViewMode is the page a pane shows.
type ViewMode int

const (
	DetailView ViewMode = iota
	ListView
)

func (v ViewMode) String() string {
	switch v {
	case DetailView:
		return "Detail"
	case ListView:
		return "List"
	default:
		return "Unknown"
	}
}

// Geometry is the last seen terminal size.
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// HeaderState is the detail view column layout.
type HeaderState struct {
	SortColumn string `json:"sort_column"`
	Descending bool   `json:"descending"`
}

// PaneState is what is remembered per pane.
type PaneState struct {
	Path     string
	ViewMode ViewMode
	Header   HeaderState
}

// WindowState is everything saved on exit and restored on start.
type WindowState struct {
	Geometry       Geometry
	ShowStatusBar  bool
	ShowToolBar    bool
	SplitterSizes  []int // tree, left pane, right pane column weights
	LeftPaneActive bool
	Left           PaneState
	Right          PaneState
	ShowHidden     bool
}

// DefaultSplitterSizes gives the tree a quarter of the width.
var DefaultSplitterSizes = []int{2, 3, 3}

// DefaultWindowState is the state used on first launch.
func DefaultWindowState() WindowState {
	return WindowState{
		ShowStatusBar:  false,
		ShowToolBar:    true,
		SplitterSizes:  append([]int(nil), DefaultSplitterSizes...),
		LeftPaneActive: true,
		Left:           PaneState{ViewMode: DetailView},
		Right:          PaneState{ViewMode: DetailView},
	}
}

// Restore reads the window state, falling back to defaults per key.
func Restore(s *Store) WindowState {
	w := DefaultWindowState()
	s.Decode(KeyGeometry, &w.Geometry)
	w.ShowToolBar = s.Bool(KeyShowToolBar, w.ShowToolBar)
	w.ShowStatusBar = s.Bool(KeyShowStatusBar, w.ShowStatusBar)
	if sizes := s.Ints(KeyMainSplitterSizes, nil); validSplitter(sizes) {
		w.SplitterSizes = sizes
	}
	w.LeftPaneActive = s.Bool(KeyLeftPaneActive, w.LeftPaneActive)

	w.Left.Path = s.String(KeyLeftPanePath, "")
	s.Decode(KeyLeftPaneFileListHdr, &w.Left.Header)
	w.Left.ViewMode = viewMode(s.Int(KeyLeftPaneViewMode, int(DetailView)))

	w.Right.Path = s.String(KeyRightPanePath, "")
	s.Decode(KeyRightPaneFileListHdr, &w.Right.Header)
	w.Right.ViewMode = viewMode(s.Int(KeyRightPaneViewMode, int(DetailView)))

	w.ShowHidden = s.Bool(KeyShowHidden, w.ShowHidden)
	return w
}

// Save writes every key. All writes are attempted; failures are joined.
func (w WindowState) Save(s *Store) error {
	values := []struct {
		key string
		v   any
	}{
		{KeyGeometry, w.Geometry},
		{KeyShowStatusBar, w.ShowStatusBar},
		{KeyShowToolBar, w.ShowToolBar},
		{KeyMainSplitterSizes, w.SplitterSizes},
		{KeyLeftPaneActive, w.LeftPaneActive},
		{KeyLeftPanePath, w.Left.Path},
		{KeyLeftPaneFileListHdr, w.Left.Header},
		{KeyLeftPaneViewMode, int(w.Left.ViewMode)},
		{KeyRightPanePath, w.Right.Path},
		{KeyRightPaneFileListHdr, w.Right.Header},
		{KeyRightPaneViewMode, int(w.Right.ViewMode)},
		{KeyShowHidden, w.ShowHidden},
	}
	var errs []error
	for _, kv := range values {
		if err := s.SetValue(kv.key, kv.v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validSplitter(sizes []int) bool {
	if len(sizes) != 3 {
		return false
	}
	for _, n := range sizes {
		if n <= 0 {
			return false
		}
	}
	return true
}

func viewMode(n int) ViewMode {
	if n == int(ListView) {
		return ListView
	}
	return DetailView
}
