// Package nav decides which page section the header should highlight for a
// given scroll position.
//
// The browser measures the sections and posts them here (or evaluates the
// same rule locally with the thresholds published by Config); the rule lives
// in one place so both agree.
package nav

import "math"

// Section ids in page order.
const (
	SectionHome     = "home"
	SectionAbout    = "about"
	SectionSkills   = "skills"
	SectionProjects = "projects"
	SectionContact  = "contact"
)

var sections = []string{SectionHome, SectionAbout, SectionSkills, SectionProjects, SectionContact}

// Sections returns the section ids in page order.
func Sections() []string {
	return append([]string(nil), sections...)
}

// Link is one header navigation entry. Home is reached through the brand
// link and has no entry of its own.
type Link struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Links returns the header navigation in display order.
func Links() []Link {
	return []Link{
		{ID: SectionAbout, Label: "About"},
		{ID: SectionSkills, Label: "Skills"},
		{ID: SectionProjects, Label: "Projects"},
		{ID: SectionContact, Label: "Contact"},
	}
}

// Config holds the classifier thresholds, in CSS pixels.
type Config struct {
	// TopOffset: above this scroll position the page is at home.
	TopOffset float64 `json:"topOffset"`
	// BottomOffset: within this distance of the document end the page is at contact.
	BottomOffset float64 `json:"bottomOffset"`
	// HeaderOffset is subtracted from each section's top for the fixed header.
	HeaderOffset float64 `json:"headerOffset"`
	// ActivationRatio is the fraction of a section that must be scrolled
	// past before it becomes active.
	ActivationRatio float64 `json:"activationRatio"`
	// ScrollMargin is left above a section when a nav link scrolls to it.
	ScrollMargin float64 `json:"scrollMargin"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		TopOffset:       100,
		BottomOffset:    100,
		HeaderOffset:    100,
		ActivationRatio: 0.2,
		ScrollMargin:    80,
	}
}

// Viewport is the browser's scroll state.
type Viewport struct {
	ScrollY        float64 `json:"scrollY"`
	Height         float64 `json:"height"`
	DocumentHeight float64 `json:"documentHeight"`
}

// SectionBox is a section's measured position in document coordinates.
type SectionBox struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Classifier picks the active section.
type Classifier struct {
	cfg Config
}

func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Config returns the thresholds the classifier was built with.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Active returns the id of the section to highlight.
//
// Near the top of the page it is always home and near the bottom always
// contact. Otherwise boxes are walked in order and the last one whose
// activation line has been scrolled past wins. Boxes with no height are
// sections that did not render and are skipped.
func (c *Classifier) Active(vp Viewport, boxes []SectionBox) string {
	if !finite(vp.ScrollY) || vp.ScrollY < c.cfg.TopOffset {
		return SectionHome
	}
	if vp.ScrollY+vp.Height >= vp.DocumentHeight-c.cfg.BottomOffset {
		return SectionContact
	}

	active := SectionHome
	for _, b := range boxes {
		if b.Height <= 0 || !finite(b.Top) || !finite(b.Height) {
			continue
		}
		threshold := (b.Top - c.cfg.HeaderOffset) + b.Height*c.cfg.ActivationRatio
		if vp.ScrollY >= threshold {
			active = b.ID
		}
	}
	return active
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
