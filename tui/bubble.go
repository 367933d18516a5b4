package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/vidscrub/vidscrub/color"
	"github.com/vidscrub/vidscrub/haptic"
	"github.com/vidscrub/vidscrub/internal/ui"
	"github.com/vidscrub/vidscrub/timeline"
	"github.com/vidscrub/vidscrub/util"
)

// gesture is the pointer interaction in progress.
type gesture int

const (
	noGesture gesture = iota
	trackGesture
	surfaceGesture
)

// region is a horizontal band of the screen that accepts pointer input.
type region int

const (
	noRegion region = iota
	surfaceRegion
	trackRegion
)

const (
	padTop         = 1
	padLeft        = 2
	headerRows     = 2
	trackRows      = 2
	footerRows     = 3
	minSurfaceRows = 3
	minColumns     = 10

	pulseLifetime = 150 * time.Millisecond
)

// bubbleOptions carries everything the playback surface is built from.
type bubbleOptions struct {
	Title     string
	Clock     timeline.MediaClock
	Haptics   timeline.HapticSink
	Scheduler timeline.Scheduler
	Params    timeline.Params
	Initial   timeline.Mode

	CellWidth float64
	LongPress time.Duration
	ShowTicks bool
	ShowHelp  bool

	// Exited is closed when the media backend goes away.
	Exited <-chan struct{}
	Now    func() time.Time
}

// statefulBubble is the playback surface: a player area that recognises taps and long-presses
// above a draggable timeline track.
type statefulBubble struct {
	controller *timeline.Controller
	keymap     *scrubKeymap

	helpC    help.Model
	spinnerC spinner.Model
	notifier *ui.Model

	title     string
	cellWidth float64
	longPress time.Duration
	showTicks bool
	showHelp  bool

	gesture     gesture
	pressToken  int
	longPressed bool

	pulse      mo.Option[haptic.Event]
	pulseToken int
	pulseArmed bool

	exited <-chan struct{}
	now    func() time.Time

	width, height int
}

func newBubble(options bubbleOptions) *statefulBubble {
	keymap := newScrubKeymap()

	bubble := statefulBubble{
		keymap:    keymap,
		helpC:     help.New(),
		spinnerC:  spinner.New(),
		notifier:  &ui.Model{},
		title:     options.Title,
		cellWidth: options.CellWidth,
		longPress: options.LongPress,
		showTicks: options.ShowTicks,
		showHelp:  options.ShowHelp,
		pulse:     mo.None[haptic.Event](),
		exited:    options.Exited,
		now:       options.Now,
	}

	if bubble.cellWidth <= 0 {
		bubble.cellWidth = 1
	}
	if bubble.now == nil {
		bubble.now = time.Now
	}

	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(color.Purple)

	sink := haptic.Multi(options.Haptics, haptic.Func(bubble.flash))
	bubble.controller = timeline.NewController(options.Clock, sink, options.Scheduler, options.Params, options.Initial)

	return &bubble
}

// flash shows a haptic event on screen for a short moment. It runs inside Update.
func (b *statefulBubble) flash(e haptic.Event) {
	b.pulse = mo.Some(e)
	b.pulseToken++
	b.pulseArmed = true
}

func (b *statefulBubble) resize(width, height int) {
	b.width = width
	b.height = height
	b.helpC.Width = width
	b.notifier.Width = width / 2
}

func (b *statefulBubble) columns() int {
	return util.Max(b.width-2*padLeft, minColumns)
}

func (b *statefulBubble) surfaceRows() int {
	return util.Max(b.height-2*padTop-headerRows-trackRows-footerRows, minSurfaceRows)
}

func (b *statefulBubble) trackTop() int {
	return padTop + headerRows + b.surfaceRows()
}

func (b *statefulBubble) regionAt(y int) region {
	top := b.trackTop()
	switch {
	case y >= padTop+headerRows && y < top:
		return surfaceRegion
	case y >= top && y < top+trackRows:
		return trackRegion
	default:
		return noRegion
	}
}

// pointerX converts a terminal column to a horizontal pointer position in pixels.
func (b *statefulBubble) pointerX(column int) float64 {
	return float64(column-padLeft) * b.cellWidth
}

func (b *statefulBubble) track() trackView {
	params := b.controller.Params()
	columns := b.columns()

	return trackView{
		columns:   columns,
		cellWidth: b.cellWidth,
		offset:    b.controller.Offset(float64(columns) * b.cellWidth),
		played:    b.controller.CurrentTime() * params.PixelsPerSecond,
		total:     b.controller.TimelineWidth(),
	}
}
