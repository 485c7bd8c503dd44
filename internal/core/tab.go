package core

import "fmt"

// Tab identifies one mutually exclusive dashboard view.
type Tab int

const (
	TabOverview Tab = iota
	TabFinancial
	TabContent
	TabStrategies
)

var tabIDs = [...]string{
	TabOverview:   "overview",
	TabFinancial:  "financial",
	TabContent:    "content",
	TabStrategies: "strategies",
}

var tabLabels = [...]string{
	TabOverview:   "Overview",
	TabFinancial:  "Financial Analysis",
	TabContent:    "Conference Content",
	TabStrategies: "Community Engagement",
}

// Tabs returns every tab in navigation order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabFinancial, TabContent, TabStrategies}
}

// ParseTab resolves a tab identifier such as "financial".
func ParseTab(id string) (Tab, error) {
	for _, t := range Tabs() {
		if tabIDs[t] == id {
			return t, nil
		}
	}
	return TabOverview, fmt.Errorf("%w: %q", ErrUnknownTab, id)
}

// Valid reports whether t is one of the four known tabs.
func (t Tab) Valid() bool {
	return t >= TabOverview && t <= TabStrategies
}

// String returns the tab identifier used in URLs and element ids.
func (t Tab) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return tabIDs[t]
}

// Label returns the navigation caption.
func (t Tab) Label() string {
	if !t.Valid() {
		return t.String()
	}
	return tabLabels[t]
}

// Selector owns the active tab of one dashboard session. A new selector
// starts on the overview; only Select changes it.
type Selector struct {
	active Tab
}

func NewSelector() *Selector {
	return &Selector{active: TabOverview}
}

// Active returns the tab currently shown.
func (s *Selector) Active() Tab {
	return s.active
}

// Select makes t the active tab. Selecting the active tab again is a no-op.
// It reports whether the active tab changed.
func (s *Selector) Select(t Tab) (bool, error) {
	if !t.Valid() {
		return false, fmt.Errorf("%w: %s", ErrUnknownTab, t)
	}
	if s.active == t {
		return false, nil
	}
	s.active = t
	return true, nil
}

// IsActive reports whether t is the active tab.
func (s *Selector) IsActive(t Tab) bool {
	return s.active == t
}
