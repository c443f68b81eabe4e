package browser

import (
	"errors"
	"fmt"
	"strings"

	"tutor-board/internal/domain/demand"

	"go.uber.org/zap"
)

var ErrDemandNotVisible = errors.New("demand not visible")

// Session is the state of one browsing session: the loaded demands, the
// filter state, the visible set and the selection. It is driven by discrete
// events and must be used from a single goroutine.
type Session struct {
	view   View
	logger *zap.Logger

	all      []demand.Demand
	visible  []demand.Demand
	filters  Filters
	options  Options
	selected string
	hint     string
	fallback bool
	loaded   bool
}

func NewSession(view View, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		view:    view,
		logger:  logger,
		filters: DefaultFilters(),
		options: DeriveOptions(nil, All),
	}
}

// Load installs the acquired demand set and renders every view.
func (s *Session) Load(acq demand.Acquisition) {
	s.all = append([]demand.Demand(nil), acq.Demands...)
	s.hint = acq.Hint()
	s.fallback = acq.IsFallback()
	s.loaded = true
	if acq.Reason != nil {
		s.logger.Warn("demand feed unavailable, using fallback", zap.Error(acq.Reason))
	}

	s.options = DeriveOptions(s.all, s.filters.City)
	s.reconcileDistrict()
	s.applyAndRender()
}

// Fail installs the fallback set after the acquisition itself broke, as
// opposed to a feed that answered badly, and renders every view.
func (s *Session) Fail(err error) {
	s.Load(demand.FallbackFor(err))
	s.hint = demand.HintLoadFailed
	s.renderStatus()
}

// SetKeyword handles free-text input.
func (s *Session) SetKeyword(value string) {
	s.filters.Keyword = strings.TrimSpace(value)
	s.applyAndRender()
}

// SetFilter handles a change of one categorical filter or the sort order.
func (s *Session) SetFilter(field Field, value string) error {
	if err := s.filters.Set(field, value); err != nil {
		return err
	}
	switch field {
	case FieldCity:
		s.options.Districts = DistrictOptions(s.all, s.filters.City)
		s.reconcileDistrict()
	case FieldDistrict:
		s.reconcileDistrict()
	}
	s.applyAndRender()
	return nil
}

// Select activates a visible demand.
func (s *Session) Select(id string) error {
	if indexOf(s.visible, id) < 0 {
		return fmt.Errorf("%w: %s", ErrDemandNotVisible, id)
	}
	s.selected = id
	s.renderList()
	s.renderDetail()
	return nil
}

// HandleKey activates id on Enter or Space and ignores other keys.
func (s *Session) HandleKey(id, key string) (bool, error) {
	switch key {
	case "Enter", "enter", " ", "space":
		return true, s.Select(id)
	default:
		return false, nil
	}
}

// Restore replays a saved filter state and selection in one render. City is
// applied before district so the district options are current when the
// district is checked.
func (s *Session) Restore(f Filters, selected string) {
	s.filters.Keyword = strings.TrimSpace(f.Keyword)
	s.filters.City = orAll(f.City)
	s.options.Districts = DistrictOptions(s.all, s.filters.City)
	s.filters.District = orAll(f.District)
	s.reconcileDistrict()
	s.filters.Grade = orAll(f.Grade)
	s.filters.Subject = orAll(f.Subject)
	s.filters.Salary = ParseSalaryBucket(string(f.Salary))
	s.filters.Sort = ParseSortMode(string(f.Sort))
	s.selected = selected
	s.applyAndRender()
}

func (s *Session) Filters() Filters   { return s.filters }
func (s *Session) Options() Options   { return s.options }
func (s *Session) SelectedID() string { return s.selected }
func (s *Session) Hint() string       { return s.hint }
func (s *Session) Loaded() bool       { return s.loaded }
func (s *Session) Fallback() bool     { return s.fallback }

func (s *Session) Visible() []demand.Demand {
	return append([]demand.Demand(nil), s.visible...)
}

func (s *Session) Selected() (demand.Demand, bool) {
	i := indexOf(s.visible, s.selected)
	if i < 0 {
		return demand.Demand{}, false
	}
	return s.visible[i], true
}

func (s *Session) reconcileDistrict() {
	if !contains(s.options.Districts, s.filters.District) {
		s.filters.District = All
	}
}

func (s *Session) applyAndRender() {
	s.visible = Apply(s.all, s.filters)
	s.selected = ReconcileSelection(s.visible, s.selected)
	s.renderList()
	s.renderDetail()
	s.renderStatus()
}

func (s *Session) renderList() {
	if s.view == nil {
		return
	}
	cards := make([]Card, 0, len(s.visible))
	for _, it := range s.visible {
		cards = append(cards, CardOf(it, it.ID == s.selected))
	}
	s.view.RenderList(cards)
}

func (s *Session) renderDetail() {
	if s.view == nil {
		return
	}
	d, ok := s.Selected()
	if !ok {
		s.view.RenderDetail(nil)
		return
	}
	s.view.RenderDetail(DetailOf(d))
}

func (s *Session) renderStatus() {
	if s.view == nil {
		return
	}
	s.view.RenderStatus(Status{
		Count:     len(s.visible),
		CountText: CountText(len(s.visible)),
		Hint:      s.hint,
		Fallback:  s.fallback,
	})
}
