// Package session holds the live workspace state between requests: the
// imported image, the current conversion, and fill progress.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ironsheep/paintbynum-mcp/internal/convert"
	"github.com/ironsheep/paintbynum-mcp/internal/fill"
	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

var (
	// ErrNoImage means no source image has been loaded yet.
	ErrNoImage = errors.New("no image loaded")

	// ErrNoConversion means no conversion result is installed.
	ErrNoConversion = errors.New("no conversion available")

	// ErrSuperseded means a conversion finished after a newer one had
	// already started; its result was discarded.
	ErrSuperseded = errors.New("conversion superseded by a newer request")
)

// Session owns the live state of one paint-by-number workspace: the
// original image bytes, the current conversion result, and the fill
// tracker. All mutation goes through the session, which serializes it.
//
// Conversions are last-write-wins. Convert releases the lock while the
// pipeline runs, so fills against the old board proceed meanwhile; when a
// conversion finishes, its result installs only if no newer conversion has
// started since, and installation swaps the board and clears fills in one
// critical section.
type Session struct {
	mu  sync.Mutex
	log *slog.Logger

	name   string
	source []byte
	cfg    convert.Config

	result  *convert.Result
	tracker *fill.Tracker

	// starts counts conversions ever begun; a finished conversion
	// installs only when its own start is still the newest.
	starts uint64
}

// New returns an empty session.
func New(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{log: logger, tracker: fill.NewTracker()}
}

// LoadImage validates and stores new source bytes, replacing any previous
// image. The current conversion and all fills are dropped: they described
// the old image. Returns the decoded dimensions.
func (s *Session) LoadImage(name string, data []byte) (width, height int, err error) {
	img, err := convert.Decode(data)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	s.source = append([]byte(nil), data...)
	s.result = nil
	s.tracker = fill.NewTracker()
	s.starts++

	s.log.Info("image loaded",
		"name", name,
		"bytes", len(data),
		"width", b.Dx(),
		"height", b.Dy())
	return b.Dx(), b.Dy(), nil
}

// Name returns the name given to the loaded image.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SourceBytes returns the stored original image bytes. Callers must treat
// the slice as read-only.
func (s *Session) SourceBytes() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return nil, ErrNoImage
	}
	return s.source, nil
}

// Convert runs the pipeline on the stored image bytes and installs the
// result. Reconversion always starts from the original bytes, so repeated
// option changes never compound quantization loss.
//
// If another Convert starts while this one is running, the older result is
// discarded and ErrSuperseded returned.
func (s *Session) Convert(ctx context.Context, cfg convert.Config) (*convert.Result, error) {
	s.mu.Lock()
	if s.source == nil {
		s.mu.Unlock()
		return nil, ErrNoImage
	}
	data := s.source
	s.starts++
	gen := s.starts
	s.mu.Unlock()

	began := time.Now()
	res, err := convert.Convert(ctx, data, cfg)
	if err != nil {
		return nil, err
	}
	return s.install(gen, cfg, res, began)
}

// install publishes a finished conversion unless a newer one has started
// since gen. Swapping the board and clearing fills share one critical
// section, so no fill ever lands between the two.
func (s *Session) install(gen uint64, cfg convert.Config, res *convert.Result, began time.Time) (*convert.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.starts {
		s.log.Debug("conversion discarded", "started", gen, "newest", s.starts)
		return nil, ErrSuperseded
	}
	s.result = res
	s.cfg = cfg
	s.tracker.Bind(res.Cells)

	s.log.Info("conversion installed",
		"grid", res.GridType,
		"cellSize", res.CellSize,
		"cells", res.CellCount(),
		"colors", res.Palette.Len(),
		"dithered", res.Dithered,
		"elapsed", time.Since(began).Round(time.Millisecond))
	return res, nil
}

// Result returns the installed conversion.
func (s *Session) Result() (*convert.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, ErrNoConversion
	}
	return s.result, nil
}

// Config returns the configuration of the installed conversion.
func (s *Session) Config() (convert.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return convert.Config{}, ErrNoConversion
	}
	return s.cfg, nil
}

// Fill marks one cell filled if it exists and the code matches. The bool
// reports whether state changed; a miss is not an error.
func (s *Session) Fill(x, y int, code palette.Code) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return false, ErrNoConversion
	}
	return s.tracker.Fill(x, y, code), nil
}

// Unfill clears one filled cell.
func (s *Session) Unfill(x, y int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return false, ErrNoConversion
	}
	return s.tracker.Unfill(x, y), nil
}

// FillPoint is one entry of a batched fill.
type FillPoint struct {
	X    int          `json:"x"`
	Y    int          `json:"y"`
	Code palette.Code `json:"code"`
}

// FillBatch applies many fills in one critical section and returns how
// many changed state.
func (s *Session) FillBatch(points []FillPoint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return 0, ErrNoConversion
	}
	applied := 0
	for _, p := range points {
		if s.tracker.Fill(p.X, p.Y, p.Code) {
			applied++
		}
	}
	return applied, nil
}

// ResetFills clears every fill on the current board.
func (s *Session) ResetFills() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return ErrNoConversion
	}
	s.tracker.Reset()
	return nil
}

// Filled reports one cell's fill state.
func (s *Session) Filled(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Filled(x, y)
}

// FilledKeys returns the filled cells in deterministic order.
func (s *Session) FilledKeys() []fill.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Keys()
}

// Progress summarizes completion of the current board.
func (s *Session) Progress() (fill.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return fill.Progress{}, ErrNoConversion
	}
	return s.tracker.Progress(), nil
}

// State is a point-in-time copy of everything a session needs to be
// reconstructed: the original bytes, the conversion options and result,
// and the filled cells.
type State struct {
	Name   string
	Source []byte
	Config convert.Config
	Result *convert.Result
	Fills  []fill.Key
}

// Snapshot captures the session for persistence. It requires an installed
// conversion; a session that never converted has nothing worth saving.
func (s *Session) Snapshot() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return State{}, ErrNoImage
	}
	if s.result == nil {
		return State{}, ErrNoConversion
	}
	return State{
		Name:   s.name,
		Source: append([]byte(nil), s.source...),
		Config: s.cfg,
		Result: s.result,
		Fills:  s.tracker.Keys(),
	}, nil
}

// Restore replaces the whole session with a previously captured state.
// Any conversion still in flight is invalidated.
func (s *Session) Restore(st State) error {
	if st.Result == nil {
		return errors.New("state has no conversion result")
	}
	if err := st.Result.Validate(); err != nil {
		return err
	}
	if len(st.Source) == 0 {
		return errors.New("state has no source image")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = st.Name
	s.source = append([]byte(nil), st.Source...)
	s.cfg = st.Config
	s.result = st.Result
	s.tracker = fill.NewTracker()
	s.tracker.Bind(st.Result.Cells)
	applied := s.tracker.Restore(st.Fills)
	s.starts++

	s.log.Info("session restored",
		"name", st.Name,
		"cells", st.Result.CellCount(),
		"fills", applied)
	return nil
}
