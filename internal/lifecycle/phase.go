// Package lifecycle drives the page presentation phases: a loading splash,
// an optional scripted intro, then the portfolio content.
package lifecycle

import "fmt"

// Phase is the top-level presentation mode of a page session.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseIntro
	PhaseContent
)

var phaseNames = map[Phase]string{
	PhaseLoading: "loading",
	PhaseIntro:   "intro",
	PhaseContent: "content",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Terminal reports whether no transition can leave p.
func (p Phase) Terminal() bool {
	return p == PhaseContent
}

// canAdvanceTo reports whether p -> next is a legal forward transition.
func (p Phase) canAdvanceTo(next Phase, introEnabled bool) bool {
	switch p {
	case PhaseLoading:
		if introEnabled {
			return next == PhaseIntro
		}
		return next == PhaseContent
	case PhaseIntro:
		return next == PhaseContent
	}
	return false
}
