package content

import (
	"sync"
	"testing"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMergeLaterWins(t *testing.T) {
	r := NewRegistry(nil)
	r.Merge(Builtin())
	n := r.Len()

	r.Merge(&Catalog{
		Applications: []Payload{
			{ID: "Skills", Kind: KindText, Title: "Skills v2", Body: "Go"},
			{ID: "Blog", Kind: KindHTML, Title: "Blog", Body: "<p>posts</p>"},
		},
	})

	assert.Equal(t, n+1, r.Len())

	skills, err := r.Get("Skills")
	require.NoError(t, err)
	assert.Equal(t, "Skills v2", skills.Title)

	list := r.List()
	assert.Equal(t, window.ApplicationID("Projects"), list[0].ID)
	assert.Equal(t, window.ApplicationID("Blog"), list[len(list)-1].ID)

	// Empty launcher lists keep the current ones.
	dock, desktop := r.Launchers()
	assert.Equal(t, Builtin().Dock, dock)
	assert.Equal(t, Builtin().Desktop, desktop)

	r.Merge(&Catalog{Dock: []Launcher{{Label: "Blog", App: "Blog"}}})
	dock, desktop = r.Launchers()
	assert.Equal(t, []Launcher{{Label: "Blog", App: "Blog"}}, dock)
	assert.Equal(t, Builtin().Desktop, desktop)
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Get("Nope")
	assert.ErrorIs(t, err, ErrUnknownApplication)
}

func TestRegistryContentProvider(t *testing.T) {
	r := NewRegistry(nil)
	r.Merge(Builtin())

	about, ok := r.Content("About Me").(Payload)
	require.True(t, ok)
	assert.Equal(t, KindHTML, about.Kind)

	ph, ok := r.Content("Projects and Experience").(Payload)
	require.True(t, ok)
	assert.Equal(t, KindPlaceholder, ph.Kind)
	assert.Equal(t, PlaceholderBody, ph.Body)
	assert.Equal(t, "Projects and Experience", ph.Title)
}

func TestRegistryOverridesFeedDesktop(t *testing.T) {
	r := NewRegistry(nil)
	r.Merge(Builtin())

	overrides := r.Overrides()
	require.Contains(t, overrides, window.ApplicationID("Resume"))
	assert.NotContains(t, overrides, window.ApplicationID("Projects"))

	d := window.NewDesktop(window.Options{
		Bounds:    window.DefaultBounds(window.Viewport{Width: 1200, Height: 800}),
		Overrides: overrides,
		Content:   r,
	})
	d.OpenApplication("Resume")
	d.OpenApplication("Projects and Experience")

	g, ok := d.GeometryOf("Resume")
	require.True(t, ok)
	assert.Equal(t, window.Point{X: 120, Y: 10}, g.Position)
	assert.Equal(t, window.Size{Width: 800, Height: 670}, g.Size)

	view := d.Snapshot()
	require.Len(t, view.Windows, 2)
	assert.Equal(t, KindIframe, view.Windows[0].Content.(Payload).Kind)
	assert.Equal(t, KindPlaceholder, view.Windows[1].Content.(Payload).Kind)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Merge(Builtin())
		}()
		go func() {
			defer wg.Done()
			_ = r.List()
			_ = r.Content("Resume")
			_ = r.Overrides()
		}()
	}
	wg.Wait()
	assert.Equal(t, len(Builtin().Applications), r.Len())
}
