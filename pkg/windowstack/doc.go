// Package windowstack provides one push/pop screen stack on top of two host
// navigation models.
//
// Some hosts have a native ordered-stack container (a navigation window that
// screens are pushed onto and popped off). Others are flat: every screen is
// shown and dismissed on its own and nothing keeps them in order. A Platform
// adapts one of these models and is chosen once, when the Controller is built.
//
// # Basic Usage
//
//	c := windowstack.New(windowstack.Options{
//	    Platform: windowstack.NewStackPlatform(host),
//	})
//
//	// The first open creates the root container.
//	c.Open(home, windowstack.OpenOptions{})
//
//	// Later opens are pushed above it.
//	c.Open(list, windowstack.OpenOptions{})
//	c.Open(detail, windowstack.OpenOptions{})
//	c.Size() // 2
//
//	c.Back()                          // closes detail
//	c.Home(windowstack.HomeOptions{}) // closes the rest, one per tick
//
// # Drawers
//
// Passing OpenOptions.Dock makes the open a root presentation into one slot of
// a side drawer (DockCenter, DockLeft or DockRight). A root presentation
// always resets the logical stack: the screens pushed before it stay with the
// old root and are no longer tracked.
//
// # Close Notifications
//
// Every opened screen gets exactly one close handler. It removes the screen
// from the stack no matter what closed it: Back, Close, a hardware back
// button or the host itself. Removing a screen that is already gone is a no-op.
//
// # Teardown
//
// Home closes every pushed screen, either instantly (screens below the top
// first, the top last) or animated, one Back per scheduler tick. Only one
// animated Home runs per Controller; a newer Home or Destroy cancels it.
// Destroy closes the drawer, the root container, or on flat hosts every
// pushed screen, and reports completion through DestroyOptions.OnComplete.
package windowstack
