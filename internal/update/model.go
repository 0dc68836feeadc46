package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/sandeepkv93/shopd/internal/model"
	"github.com/sandeepkv93/shopd/internal/service"
	"github.com/sandeepkv93/shopd/internal/views"
)

const (
	DefaultTitle         = "Shared Shopping List"
	DefaultStatusTimeout = 4 * time.Second
)

type StatusBar struct {
	Text string
	Kind views.StatusKind
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Options wires the model to a service. Changes, when set, delivers a signal
// each time the backing store was modified by someone else.
type Options struct {
	Service *service.Service
	Changes <-chan struct{}
	Title   string
	Logger  *zap.Logger
	// StatusTimeout is how long a status line stays up. Zero means
	// DefaultStatusTimeout; negative keeps it until the next action.
	StatusTimeout time.Duration
}

type Model struct {
	Title        string
	Items        []model.Item
	Cursor       int
	InputFocused bool
	ConfirmReset bool
	Palette      CommandPaletteState
	HelpVisible  bool
	Status       StatusBar
	Keys         KeyMap
	Quitting     bool
	LastError    error

	ctx     context.Context
	svc     *service.Service
	changes <-chan struct{}
	logger  *zap.Logger

	statusTTL time.Duration
	statusSeq int

	addInput     textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type ListChangedMsg struct{}

// ClearStatusMsg empties the status line if no newer status replaced it.
type ClearStatusMsg struct {
	Seq int
}

func NewModel(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	ttl := opts.StatusTimeout
	if ttl == 0 {
		ttl = DefaultStatusTimeout
	}
	m := Model{
		Title:        title,
		InputFocused: true,
		Keys:         DefaultKeyMap(),
		ctx:          ctx,
		svc:          opts.Service,
		changes:      opts.Changes,
		logger:       logger,
		statusTTL:    ttl,
	}
	m.initBubbleComponents()
	m.reload("")
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "New item"
	m.addInput.CharLimit = 256
	m.addInput.Width = 42
	m.addInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}

// reload re-reads the list and keeps the cursor on follow when it is still
// present.
func (m *Model) reload(follow string) {
	if m.svc == nil {
		m.Items = nil
		m.Cursor = 0
		return
	}
	m.Items = m.svc.List(m.ctx)
	if follow != "" {
		for i, item := range m.Items {
			if model.SameName(item.Name, follow) {
				m.Cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selected() (model.Item, bool) {
	if len(m.Items) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return model.Item{}, false
	}
	return m.Items[m.Cursor], true
}

// AddInputValue exposes the pending text of the add box.
func (m Model) AddInputValue() string {
	return m.addInput.Value()
}
