// Package source resolves the current quality variant of a media item and
// hands position-preserving source changes to a remounter.
package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
)

var (
	ErrNoSources        = errors.New("source list is empty")
	ErrDuplicateQuality = errors.New("duplicate quality label")
	ErrUnknownQuality   = errors.New("quality not in source list")
)

// Variant is one selectable rendition of the same media item.
type Variant struct {
	Label string
	URI   string
}

// Remounter reassigns the media source on the mounted surfaces and seeks
// them back to position once they can accept it.
type Remounter interface {
	SwitchQuality(v Variant, position time.Duration)
}

// Validate checks that sources is non-empty and labels are unique.
func Validate(sources []Variant) error {
	if len(sources) == 0 {
		return ErrNoSources
	}
	dups := lo.FindDuplicatesBy(sources, func(v Variant) string { return v.Label })
	if len(dups) > 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateQuality, dups[0].Label)
	}
	return nil
}

// Switcher owns the ordered source list of one media item and its current index.
type Switcher struct {
	sources []Variant
	index   int
	remount Remounter
}

// NewSwitcher validates sources and starts on the first variant.
func NewSwitcher(sources []Variant, remount Remounter) (*Switcher, error) {
	if err := Validate(sources); err != nil {
		return nil, err
	}
	return &Switcher{
		sources: append([]Variant(nil), sources...),
		remount: remount,
	}, nil
}

// Prefer makes label the current variant without remounting. Used before the
// first mount; unknown labels leave the index unchanged.
func (s *Switcher) Prefer(label string) bool {
	i := s.IndexOf(label)
	if i < 0 {
		return false
	}
	s.index = i
	return true
}

// IndexOf returns the index of label, or -1.
func (s *Switcher) IndexOf(label string) int {
	_, i, ok := lo.FindIndexOf(s.sources, func(v Variant) bool { return v.Label == label })
	if !ok {
		return -1
	}
	return i
}

// Index returns the current source index.
func (s *Switcher) Index() int { return s.index }

// Current returns the current variant.
func (s *Switcher) Current() Variant { return s.sources[s.index] }

// Sources returns a copy of the source list.
func (s *Switcher) Sources() []Variant {
	return append([]Variant(nil), s.sources...)
}

// Select switches to v, matched by label, resuming at position.
// Returns false without remounting when v is already current.
func (s *Switcher) Select(v Variant, position time.Duration) (bool, error) {
	i := s.IndexOf(v.Label)
	if i < 0 {
		return false, fmt.Errorf("%w: %q", ErrUnknownQuality, v.Label)
	}
	if i == s.index {
		return false, nil
	}
	s.index = i
	if s.remount != nil {
		s.remount.SwitchQuality(s.sources[i], position)
	}
	return true, nil
}
