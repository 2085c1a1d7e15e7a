package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ppttheme/internal/models"
)

// Command is one tagged edit request sent by a live session client
type Command struct {
	Op string `json:"op"`

	Direction     Direction            `json:"direction,omitempty"`
	Index         int                  `json:"index,omitempty"`
	SlideID       int                  `json:"slideId,omitempty"`
	Field         SlideField           `json:"field,omitempty"`
	Value         string               `json:"value,omitempty"`
	SlideIndex    int                  `json:"slideIndex,omitempty"`
	SubSlideIndex int                  `json:"subSlideIndex,omitempty"`
	Row           int                  `json:"row,omitempty"`
	Column        string               `json:"column,omitempty"`
	Title         *string              `json:"title,omitempty"`
	Content       *string              `json:"content,omitempty"`
	Chart         *models.ChartRecord  `json:"chart,omitempty"`
	ClearChart    bool                 `json:"clearChart,omitempty"`
	Kind          models.ChartKind     `json:"kind,omitempty"`
	Name          string               `json:"name,omitempty"`
	Colors        *models.ThemeColors  `json:"colors,omitempty"`
	Fonts         *models.Fonts        `json:"fonts,omitempty"`
	PresetID      string               `json:"presetId,omitempty"`
	SlideSize     models.SlideSizeKind `json:"slideSize,omitempty"`
	Width         int                  `json:"width,omitempty"`
	Height        int                  `json:"height,omitempty"`
	Settings      *SlideSettings       `json:"settings,omitempty"`
}

// Command ops
const (
	OpSnapshot           = "snapshot"
	OpAddSlide           = "addSlide"
	OpNavigate           = "navigate"
	OpSelect             = "select"
	OpApplyTheme         = "applyTheme"
	OpSaveTheme          = "saveTheme"
	OpSelectSlideSize    = "selectSlideSize"
	OpUpdateSlideField   = "updateSlideField"
	OpSetSlideBackground = "setSlideBackground"
	OpSetSlideDimensions = "setSlideDimensions"
	OpUpdateSubSlide     = "updateSubSlide"
	OpDeleteSubSlide     = "deleteSubSlide"
	OpAddChart           = "addChart"
	OpAddChartRow        = "addChartRow"
	OpDeleteChartRow     = "deleteChartRow"
	OpUpdateChartCell    = "updateChartCell"
	OpApplyFonts         = "applyFonts"
	OpSaveFonts          = "saveFonts"
	OpApplyFontPreset    = "applyFontPreset"
	OpUpdateFontPreset   = "updateFontPreset"
	OpDeleteFontPreset   = "deleteFontPreset"
	OpApplySlideSettings = "applySlideSettings"
	OpCreateSlide        = "createSlide"
	OpStartEdit          = "startEdit"
	OpCommitEdit         = "commitEdit"
)

// Event is pushed to live session clients
type Event struct {
	Type     string                       `json:"type"`
	Settings *models.PresentationSettings `json:"settings,omitempty"`
	Cursor   *EditCursor                  `json:"cursor,omitempty"`
	Message  string                       `json:"message,omitempty"`
}

const (
	EventSnapshot = "snapshot"
	EventError    = "error"
)

const subscriberBuffer = 16

// HostedSession is an EditSession shared by the websocket clients attached to
// it. Commands are applied one at a time.
type HostedSession struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	session     *EditSession
	subscribers map[chan Event]struct{}
	closed      bool
	logger      *zap.Logger
}

// Execute applies cmd to the session and returns the resulting snapshot
func (hs *HostedSession) Execute(cmd Command) (*models.PresentationSettings, error) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	if hs.closed {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, hs.ID)
	}
	if err := hs.apply(cmd); err != nil {
		hs.logger.Debug("Command rejected", zap.String("session", hs.ID), zap.String("op", cmd.Op), zap.Error(err))
		return nil, err
	}
	return hs.session.Snapshot(), nil
}

func (hs *HostedSession) apply(cmd Command) error {
	s := hs.session
	switch cmd.Op {
	case OpSnapshot:
		hs.broadcast(s.Snapshot())
		return nil
	case OpAddSlide:
		s.AddSlide()
		return nil
	case OpNavigate:
		return s.Navigate(cmd.Direction)
	case OpSelect:
		return s.Select(cmd.Index)
	case OpApplyTheme:
		return s.ApplyThemeByName(cmd.Name)
	case OpSaveTheme:
		if cmd.Colors == nil {
			return fmt.Errorf("%w: colors are required", ErrInvalidValue)
		}
		s.SaveTheme(*cmd.Colors, cmd.Name)
		return nil
	case OpSelectSlideSize:
		return s.SelectSlideSize(cmd.Name)
	case OpUpdateSlideField:
		field, err := ParseSlideField(string(cmd.Field))
		if err != nil {
			return err
		}
		return s.UpdateSlideField(cmd.SlideID, field, cmd.Value)
	case OpSetSlideBackground:
		s.SetSlideBackground(cmd.Value)
		return nil
	case OpSetSlideDimensions:
		return s.SetSlideDimensions(cmd.SlideID, cmd.SlideSize, cmd.Width, cmd.Height)
	case OpUpdateSubSlide:
		return s.UpdateSubSlide(cmd.SlideIndex, cmd.SubSlideIndex, SubSlidePatch{
			Title:      cmd.Title,
			Content:    cmd.Content,
			Chart:      cmd.Chart,
			ClearChart: cmd.ClearChart,
		})
	case OpDeleteSubSlide:
		return s.DeleteSubSlide(cmd.SlideIndex, cmd.SubSlideIndex)
	case OpAddChart:
		_, err := s.AddChartToActiveSlide(cmd.Kind)
		return err
	case OpAddChartRow:
		return s.AddChartRow(cmd.SlideIndex, cmd.SubSlideIndex)
	case OpDeleteChartRow:
		return s.DeleteChartRow(cmd.SlideIndex, cmd.SubSlideIndex, cmd.Row)
	case OpUpdateChartCell:
		return s.UpdateChartCell(cmd.SlideIndex, cmd.SubSlideIndex, cmd.Row, cmd.Column, cmd.Value)
	case OpApplyFonts:
		if cmd.Fonts == nil {
			return fmt.Errorf("%w: fonts are required", ErrInvalidValue)
		}
		s.ApplyFonts(*cmd.Fonts)
		return nil
	case OpSaveFonts:
		if cmd.Fonts == nil {
			return fmt.Errorf("%w: fonts are required", ErrInvalidValue)
		}
		s.SaveFonts(models.FontPreset{Name: cmd.Name, TitleFont: cmd.Fonts.TitleFont, BodyFont: cmd.Fonts.BodyFont})
		return nil
	case OpApplyFontPreset:
		return s.ApplyFontPreset(cmd.PresetID)
	case OpUpdateFontPreset:
		if cmd.Fonts == nil {
			return fmt.Errorf("%w: fonts are required", ErrInvalidValue)
		}
		_, err := s.UpdateFontPreset(cmd.PresetID, models.FontPreset{Name: cmd.Name, TitleFont: cmd.Fonts.TitleFont, BodyFont: cmd.Fonts.BodyFont})
		return err
	case OpDeleteFontPreset:
		return s.DeleteFontPreset(cmd.PresetID)
	case OpApplySlideSettings:
		if cmd.Settings == nil {
			return fmt.Errorf("%w: settings are required", ErrInvalidValue)
		}
		return s.ApplySlideSettings(cmd.SlideID, *cmd.Settings)
	case OpCreateSlide:
		if cmd.Settings == nil {
			return fmt.Errorf("%w: settings are required", ErrInvalidValue)
		}
		_, err := s.CreateSlide(*cmd.Settings)
		return err
	case OpStartEdit:
		if err := s.StartEdit(cmd.SlideID, cmd.Field); err != nil {
			return err
		}
		// the cursor is not part of the document, so clients learn of it here
		hs.broadcast(s.Snapshot())
		return nil
	case OpCommitEdit:
		s.CommitEdit()
		hs.broadcast(s.Snapshot())
		return nil
	}
	return fmt.Errorf("%w: op %q", ErrInvalidValue, cmd.Op)
}

// Snapshot returns the current document of the session
func (hs *HostedSession) Snapshot() *models.PresentationSettings {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return hs.session.Snapshot()
}

// Subscribe registers a client. The returned channel first carries the
// current snapshot and then one event per change; cancel detaches it. The
// channel is also closed when the session ends.
func (hs *HostedSession) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	hs.mu.Lock()
	defer hs.mu.Unlock()

	if hs.closed {
		close(ch)
		return ch, func() {}
	}
	hs.subscribers[ch] = struct{}{}
	ch <- Event{Type: EventSnapshot, Settings: hs.session.Snapshot()}

	cancel := func() {
		hs.mu.Lock()
		defer hs.mu.Unlock()

		if _, ok := hs.subscribers[ch]; ok {
			delete(hs.subscribers, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// close ends the session and detaches every client
func (hs *HostedSession) close() {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.closed = true
	for ch := range hs.subscribers {
		delete(hs.subscribers, ch)
		close(ch)
	}
}

// broadcast runs with hs.mu held, as the session observer
func (hs *HostedSession) broadcast(doc *models.PresentationSettings) {
	var cursor *EditCursor
	if c, ok := hs.session.EditCursor(); ok {
		cursor = &c
	}
	event := Event{Type: EventSnapshot, Settings: doc, Cursor: cursor}
	for ch := range hs.subscribers {
		select {
		case ch <- event:
		default:
			hs.logger.Warn("Dropping snapshot for slow client", zap.String("session", hs.ID))
		}
	}
}

// Subscribers returns the number of attached clients
func (hs *HostedSession) Subscribers() int {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return len(hs.subscribers)
}

// SessionHub hosts the live edit sessions of the service
type SessionHub struct {
	mu       sync.RWMutex
	sessions map[string]*HostedSession
	themes   []models.Theme
	logger   *zap.Logger
}

// NewSessionHub creates a hub whose sessions include the given extra themes
func NewSessionHub(logger *zap.Logger, themes ...models.Theme) *SessionHub {
	return &SessionHub{
		sessions: make(map[string]*HostedSession),
		themes:   themes,
		logger:   logger,
	}
}

// Create starts a new hosted session
func (h *SessionHub) Create() *HostedSession {
	hs := &HostedSession{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		subscribers: make(map[chan Event]struct{}),
		logger:      h.logger,
	}
	hs.session = NewEditSession(
		WithThemes(h.themes...),
		WithLogger(h.logger),
		WithObserver(hs.broadcast),
	)

	h.mu.Lock()
	h.sessions[hs.ID] = hs
	h.mu.Unlock()

	h.logger.Info("Edit session created", zap.String("session", hs.ID))
	return hs
}

// Get returns a hosted session by id
func (h *SessionHub) Get(id string) (*HostedSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	hs, ok := h.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return hs, nil
}

// Remove drops a hosted session and closes the channels of its clients.
// Later commands against it fail with ErrSessionNotFound.
func (h *SessionHub) Remove(id string) error {
	h.mu.Lock()
	hs, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	hs.close()
	h.logger.Info("Edit session removed", zap.String("session", id))
	return nil
}

// Len returns the number of hosted sessions
func (h *SessionHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
