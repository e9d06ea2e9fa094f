// Package session keeps the live desktops of connected shells.
//
// Each browser shell gets its own window.Desktop, addressed by a desktop id.
// The Manager serializes operations per desktop, tracks when each desktop
// was last used and reaps the ones left idle.
//
// Example Usage:
//
//	mgr := session.NewManager(session.Options{Content: registry, IdleTTL: 30 * time.Minute}, metrics, logger)
//	deskID, view, err := mgr.Create(window.Viewport{Width: 1280, Height: 800})
//	err = mgr.Do(deskID, func(d *window.Desktop) error {
//		d.OpenApplication("About Me")
//		return nil
//	})
//	go mgr.Run(ctx, time.Minute)
package session
