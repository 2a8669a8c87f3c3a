package particle

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Mode is the controller state.
type Mode int

const (
	Setting Mode = iota
	ShowOne
	ShowTwo
	ShowThree
	ShowFour
)

var modeNames = [...]string{
	Setting:   "setting",
	ShowOne:   "show-one",
	ShowTwo:   "show-two",
	ShowThree: "show-three",
	ShowFour:  "show-four",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts a mode name, the variant it drives, or its digit 0-4.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if s == name || s == fmt.Sprint(m) {
			return Mode(m), nil
		}
	}
	for v := StaticGrid; v <= TrailingCursor; v++ {
		if s == v.String() {
			return Mode(int(v) + 1), nil
		}
	}
	return Setting, fmt.Errorf("unknown mode %q", s)
}

// Options fixes the geometry of every population.
type Options struct {
	Bounds       Rect   // visible area, world coordinates
	GridAnchor   r2.Vec // top-left particle of the grid
	CellSize     float64
	StreamOrigin r2.Vec
	Broadphase   Broadphase
	Rand         *rand.Rand
	Logger       *slog.Logger
}

// Controller selects which population is driven and drawn.
type Controller struct {
	opts   Options
	mode   Mode
	grid   *Population
	stream *Population
	cloud  *Population
	trail  *Population
	ticks  uint64
	log    *slog.Logger
}

// NewController starts in Setting with every population built and empty
// (the grid laid out but frozen).
func NewController(opts Options) *Controller {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		opts:   opts,
		mode:   Setting,
		grid:   NewStaticGrid(opts.GridAnchor, opts.CellSize, opts.Rand),
		stream: NewStream(opts.StreamOrigin, opts.Rand),
		cloud:  NewRepellingCloud(opts.Bounds, opts.Broadphase, opts.Rand),
		trail:  NewTrailingCursor(opts.Rand),
		log:    log.With("component", "controller"),
	}
}

// Mode returns the current state.
func (c *Controller) Mode() Mode { return c.mode }

// Ticks counts the updates run since construction.
func (c *Controller) Ticks() uint64 { return c.ticks }

// SetMode switches state. ShowOne always rebuilds the grid and ShowThree
// always empties the cloud; the stream and the trail keep their particles.
func (c *Controller) SetMode(m Mode) {
	switch m {
	case ShowOne:
		c.grid = NewStaticGrid(c.opts.GridAnchor, c.opts.CellSize, c.opts.Rand)
	case ShowThree:
		c.cloud = NewRepellingCloud(c.opts.Bounds, c.opts.Broadphase, c.opts.Rand)
	case Setting, ShowTwo, ShowFour:
	default:
		c.log.Warn("ignoring unknown mode", "mode", m)
		return
	}
	if m != c.mode {
		c.log.Info("mode switch", "from", c.mode, "to", m)
	}
	c.mode = m
}

// Shatter releases the grid. Only honoured in ShowOne.
func (c *Controller) Shatter() bool {
	if c.mode != ShowOne || !c.grid.Intact() {
		return false
	}
	c.grid.Shatter()
	c.log.Info("grid shattered", "particles", c.grid.Len())
	return true
}

// Active returns the population driven in the current mode, nil in Setting.
func (c *Controller) Active() *Population {
	return c.population(c.mode)
}

// population returns the population owned by m, nil for Setting.
func (c *Controller) population(m Mode) *Population {
	switch m {
	case ShowOne:
		return c.grid
	case ShowTwo:
		return c.stream
	case ShowThree:
		return c.cloud
	case ShowFour:
		return c.trail
	}
	return nil
}

// Update runs one tick of the active population.
func (c *Controller) Update(in Input) {
	c.ticks++
	if ps := c.Active(); ps != nil {
		ps.Step(in)
	}
}
