package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A 5000px page with a 800px viewport; each section is 1000px tall.
var page = []SectionBox{
	{ID: SectionHome, Top: 0, Height: 1000},
	{ID: SectionAbout, Top: 1000, Height: 1000},
	{ID: SectionSkills, Top: 2000, Height: 1000},
	{ID: SectionProjects, Top: 3000, Height: 1000},
	{ID: SectionContact, Top: 4000, Height: 1000},
}

func vp(scrollY float64) Viewport {
	return Viewport{ScrollY: scrollY, Height: 800, DocumentHeight: 5000}
}

func TestActive(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name    string
		scrollY float64
		want    string
	}{
		{"top of page", 0, SectionHome},
		{"just under top offset", 99, SectionHome},
		{"past top offset, inside home", 150, SectionHome},
		// about threshold = (1000-100) + 1000*0.2 = 1100
		{"just before about activates", 1099, SectionHome},
		{"about activates", 1100, SectionAbout},
		// skills threshold = 2100
		{"skills", 2100, SectionSkills},
		{"projects", 3150, SectionProjects},
		// bottom: 4100 + 800 >= 5000 - 100
		{"near bottom", 4100, SectionContact},
		{"just above bottom band", 4099, SectionProjects},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Active(vp(tt.scrollY), page))
		})
	}
}

func TestActive_SkipsZeroHeight(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	boxes := []SectionBox{
		{ID: SectionHome, Top: 0, Height: 1000},
		{ID: SectionAbout, Top: 1000, Height: 0},
		{ID: SectionSkills, Top: 1000, Height: 2000},
	}
	assert.Equal(t, SectionSkills, c.Active(vp(1500), boxes))
	assert.Equal(t, SectionHome, c.Active(vp(1000), boxes))
}

func TestActive_NoBoxes(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	assert.Equal(t, SectionHome, c.Active(vp(2000), nil))
}

func TestActive_ShortPage(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	// A page barely taller than the viewport is at the bottom as soon as it
	// leaves the top band.
	assert.Equal(t, SectionContact, c.Active(Viewport{ScrollY: 120, Height: 800, DocumentHeight: 950}, page))
}

func TestActive_CustomConfig(t *testing.T) {
	c := NewClassifier(Config{TopOffset: 0, BottomOffset: 0, HeaderOffset: 0, ActivationRatio: 0.5})
	assert.Equal(t, SectionHome, c.Active(vp(1499), page))
	assert.Equal(t, SectionAbout, c.Active(vp(1500), page))
}

func TestSectionsAndLinks(t *testing.T) {
	assert.Equal(t, []string{"home", "about", "skills", "projects", "contact"}, Sections())

	s := Sections()
	s[0] = "mutated"
	assert.Equal(t, "home", Sections()[0])

	links := Links()
	assert.Len(t, links, 4)
	assert.Equal(t, "About", links[0].Label)
}
