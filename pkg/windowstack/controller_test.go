package windowstack_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
	"github.com/BrandonKowalski/windowstack/pkg/windowstack/hosttest"
)

func newStackController(t *testing.T) (*windowstack.Controller, *hosttest.StackHost, *hosttest.Log) {
	t.Helper()
	log := hosttest.NewLog()
	host := hosttest.NewStackHost(log)
	c := windowstack.New(windowstack.Options{
		Platform:  windowstack.NewStackPlatform(host),
		Scheduler: hosttest.NewClock(),
	})
	return c, host, log
}

func newFlatController(t *testing.T) (*windowstack.Controller, *hosttest.FlatHost, *hosttest.Log) {
	t.Helper()
	log := hosttest.NewLog()
	host := hosttest.NewFlatHost(log)
	c := windowstack.New(windowstack.Options{
		Platform:  windowstack.NewFlatPlatform(host),
		Scheduler: hosttest.NewClock(),
	})
	return c, host, log
}

func openAll(t *testing.T, c *windowstack.Controller, screens ...*hosttest.Screen) {
	t.Helper()
	for _, s := range screens {
		require.NoError(t, c.Open(s, windowstack.OpenOptions{}))
	}
}

func TestStackFirstOpenCreatesRootContainer(t *testing.T) {
	c, host, log := newStackController(t)
	root := hosttest.NewScreen(log, "R")

	require.NoError(t, c.Open(root, windowstack.OpenOptions{}))

	require.Len(t, host.Containers(), 1)
	assert.True(t, host.Last().Shown())
	assert.Equal(t, 0, c.Size())
	assert.False(t, c.Platform().NeedsRoot())
}

func TestStackSizeCountsPushesOnly(t *testing.T) {
	c, host, log := newStackController(t)
	openAll(t, c,
		hosttest.NewScreen(log, "R"),
		hosttest.NewScreen(log, "A"),
		hosttest.NewScreen(log, "B"),
	)

	assert.Equal(t, 2, c.Size())
	assert.Equal(t, []string{"A", "B"}, host.Last().Children())
	assert.Equal(t, []string{"A", "B"}, log.Filter("push"))
}

func TestFlatSizeCountsEveryOpen(t *testing.T) {
	c, host, log := newFlatController(t)
	openAll(t, c,
		hosttest.NewScreen(log, "A"),
		hosttest.NewScreen(log, "B"),
		hosttest.NewScreen(log, "C"),
	)

	assert.Equal(t, 3, c.Size())
	assert.Equal(t, []string{"A", "B", "C"}, host.Shown())
	assert.False(t, c.Platform().NeedsRoot())
}

func TestDockedOpenResetsStack(t *testing.T) {
	c, host, log := newStackController(t)
	openAll(t, c,
		hosttest.NewScreen(log, "R"),
		hosttest.NewScreen(log, "A"),
		hosttest.NewScreen(log, "B"),
	)
	first := host.Last()
	drawer := hosttest.NewDrawer(log)
	menu := hosttest.NewScreen(log, "M")

	require.NoError(t, c.Open(menu, windowstack.OpenOptions{Dock: drawer}))

	assert.Equal(t, 0, c.Size())
	require.Len(t, host.Containers(), 2)
	assert.Equal(t, host.Last(), drawer.Slot(windowstack.DockCenter))
	assert.False(t, host.Last().Shown(), "docked container is shown by the drawer, not opened")
	assert.False(t, first.Closed(), "the replaced container is not closed")
}

func TestDockedOpenResetsStackFlat(t *testing.T) {
	c, _, log := newFlatController(t)
	openAll(t, c, hosttest.NewScreen(log, "A"), hosttest.NewScreen(log, "B"))

	drawer := hosttest.NewWindowedDrawer(log)
	center := hosttest.NewScreen(log, "D")
	center.Props = windowstack.Properties{Title: "Inbox", KeepScreenOn: true}

	require.NoError(t, c.Open(center, windowstack.OpenOptions{Dock: drawer}))

	assert.Equal(t, 0, c.Size())
	assert.Equal(t, center, drawer.Slot(windowstack.DockCenter))
	assert.Equal(t, "Inbox", drawer.Inherited.Title)
	assert.True(t, drawer.Inherited.KeepScreenOn)
	assert.Equal(t, 1, center.Opened())
	assert.Equal(t, []string{"D"}, log.Filter("dock"))
	assert.Equal(t, []string{"D"}, log.Filter("menu"))
}

func TestDockedOpenUsesConfiguredTarget(t *testing.T) {
	c, _, log := newFlatController(t)
	drawer := hosttest.NewDrawer(log)

	require.True(t, c.SetDockTarget(windowstack.DockRight))
	right := hosttest.NewScreen(log, "right")
	require.NoError(t, c.Open(right, windowstack.OpenOptions{Dock: drawer}))
	assert.Equal(t, right, drawer.Slot(windowstack.DockRight))

	left := hosttest.NewScreen(log, "left")
	require.NoError(t, c.Open(left, windowstack.OpenOptions{Dock: drawer, Target: windowstack.DockLeft}))
	assert.Equal(t, left, drawer.Slot(windowstack.DockLeft))
	assert.Equal(t, windowstack.DockRight, c.DockTarget(), "a per-open target does not change the configured one")
}

func TestSetDockTargetIgnoresInvalid(t *testing.T) {
	c, _, _ := newFlatController(t)
	assert.Equal(t, windowstack.DockCenter, c.DockTarget())

	require.True(t, c.SetDockTarget(windowstack.DockLeft))
	assert.False(t, c.SetDockTarget(999))
	assert.False(t, c.SetDockTarget(0))

	assert.Equal(t, windowstack.DockLeft, c.DockTarget())
}

func TestInvalidInitialDockTargetFallsBackToCenter(t *testing.T) {
	c := windowstack.New(windowstack.Options{
		Platform:   windowstack.NewFlatPlatform(hosttest.NewFlatHost(hosttest.NewLog())),
		DockTarget: 42,
	})
	assert.Equal(t, windowstack.DockCenter, c.DockTarget())
}

func TestBackOnEmptyIsNoop(t *testing.T) {
	c, _, log := newFlatController(t)

	require.NoError(t, c.Back())

	assert.Equal(t, 0, c.Size())
	assert.Empty(t, log.Events())
}

func TestBackClosesTop(t *testing.T) {
	c, _, log := newFlatController(t)
	a, b := hosttest.NewScreen(log, "A"), hosttest.NewScreen(log, "B")
	openAll(t, c, a, b)

	require.NoError(t, c.Back())

	assert.True(t, b.Closed())
	assert.False(t, a.Closed())
	top, ok := c.Top()
	require.True(t, ok)
	assert.Equal(t, a, top.Screen)
}

func TestCloseNotificationPrunesByIdentity(t *testing.T) {
	c, _, log := newFlatController(t)
	// Same name, different screens.
	first := hosttest.NewScreen(log, "X")
	second := hosttest.NewScreen(log, "X")
	other := hosttest.NewScreen(log, "Y")
	openAll(t, c, first, other, second)

	second.FireClose()

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Same(t, first, entries[0].Screen)
	assert.Same(t, other, entries[1].Screen)

	second.FireClose()
	assert.Equal(t, 2, c.Size(), "a repeated notification removes nothing")
}

func TestOpenRegistersOneCloseHandler(t *testing.T) {
	c, _, log := newStackController(t)
	root, a := hosttest.NewScreen(log, "R"), hosttest.NewScreen(log, "A")
	openAll(t, c, root, a)

	assert.Equal(t, 1, root.Subscriptions())
	assert.Equal(t, 1, a.Subscriptions())
}

func TestOpenTwiceIsRejected(t *testing.T) {
	c, _, log := newFlatController(t)
	a := hosttest.NewScreen(log, "A")
	openAll(t, c, a)

	err := c.Open(a, windowstack.OpenOptions{})

	assert.ErrorIs(t, err, windowstack.ErrAlreadyOpen)
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, 1, a.Subscriptions())
}

func TestOpenNilScreen(t *testing.T) {
	c, _, _ := newFlatController(t)
	assert.Error(t, c.Open(nil, windowstack.OpenOptions{}))
}

func TestFailedPushRollsBack(t *testing.T) {
	c, host, log := newFlatController(t)
	refused := errors.New("surface lost")
	host.ShowErr = refused
	a := hosttest.NewScreen(log, "A")

	err := c.Open(a, windowstack.OpenOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, refused)
	assert.True(t, windowstack.IsHostError(err))
	assert.Equal(t, 0, c.Size())
	assert.Equal(t, 0, a.Subscriptions())
}

func TestFailedRootKeepsStack(t *testing.T) {
	c, host, log := newFlatController(t)
	openAll(t, c, hosttest.NewScreen(log, "A"))
	host.DockErr = errors.New("drawer detached")

	err := c.Open(hosttest.NewScreen(log, "D"), windowstack.OpenOptions{Dock: hosttest.NewDrawer(log)})

	assert.ErrorIs(t, err, host.DockErr)
	assert.Equal(t, 1, c.Size())
}

func TestMenuRefreshFailureIsLoggedAndIgnored(t *testing.T) {
	var buf bytes.Buffer
	log := hosttest.NewLog()
	host := hosttest.NewFlatHost(log)
	host.MenuErr = errors.New("activity not attached")
	c := windowstack.New(windowstack.Options{
		Platform: windowstack.NewFlatPlatform(host),
		Logger:   slog.New(slog.NewJSONHandler(&buf, nil)),
	})
	drawer := hosttest.NewDrawer(log)
	d := hosttest.NewScreen(log, "D")

	require.NoError(t, c.Open(d, windowstack.OpenOptions{Dock: drawer}))

	assert.Equal(t, d, drawer.Slot(windowstack.DockCenter))
	assert.Contains(t, buf.String(), "Could not refresh drawer menu")
	assert.Contains(t, buf.String(), "activity not attached")
}

func TestCloseWithoutContainer(t *testing.T) {
	c, _, log := newStackController(t)

	err := c.Close(hosttest.NewScreen(log, "A"))

	assert.ErrorIs(t, err, windowstack.ErrNoContainer)
}

func TestCloseNonTopPropagatesHostError(t *testing.T) {
	c, host, log := newStackController(t)
	host.StrictTop = true
	a, b := hosttest.NewScreen(log, "A"), hosttest.NewScreen(log, "B")
	openAll(t, c, hosttest.NewScreen(log, "R"), a, b)

	err := c.Close(a)

	assert.ErrorIs(t, err, hosttest.ErrNotTop)
	assert.Equal(t, 2, c.Size())
}

func TestCloseUntrackedScreenFlat(t *testing.T) {
	c, _, log := newFlatController(t)

	err := c.Close(hosttest.NewScreen(log, "ghost"))

	assert.ErrorIs(t, err, hosttest.ErrNotShown)
}

func TestFlatCloseAllowsAnyPosition(t *testing.T) {
	c, _, log := newFlatController(t)
	a, b, cc := hosttest.NewScreen(log, "A"), hosttest.NewScreen(log, "B"), hosttest.NewScreen(log, "C")
	openAll(t, c, a, b, cc)

	require.NoError(t, c.Close(b))

	assert.Equal(t, 2, c.Size())
	assert.Equal(t, []string{"B"}, log.Filter("closed"))
}

func TestRootContainerCloseClearsStack(t *testing.T) {
	c, host, log := newStackController(t)
	openAll(t, c,
		hosttest.NewScreen(log, "R"),
		hosttest.NewScreen(log, "A"),
		hosttest.NewScreen(log, "B"),
	)

	require.NoError(t, host.Last().Close())

	assert.Equal(t, 0, c.Size())
	assert.True(t, c.Platform().NeedsRoot())

	next := hosttest.NewScreen(log, "N")
	require.NoError(t, c.Open(next, windowstack.OpenOptions{}))
	assert.Len(t, host.Containers(), 2)
	assert.Equal(t, 0, c.Size())
}

func TestReplacedContainerCloseLeavesNewStack(t *testing.T) {
	c, host, log := newStackController(t)
	openAll(t, c, hosttest.NewScreen(log, "R1"), hosttest.NewScreen(log, "A"))
	old := host.Last()

	require.NoError(t, c.Open(hosttest.NewScreen(log, "R2"), windowstack.OpenOptions{Dock: hosttest.NewDrawer(log)}))
	openAll(t, c, hosttest.NewScreen(log, "B"))

	require.NoError(t, old.Close())

	assert.Equal(t, 1, c.Size())
	assert.False(t, c.Platform().NeedsRoot())
}

func TestAdoptContainer(t *testing.T) {
	log := hosttest.NewLog()
	host := hosttest.NewStackHost(log)
	platform := windowstack.NewStackPlatform(host)
	external, err := host.NewContainer(hosttest.NewScreen(log, "R"))
	require.NoError(t, err)
	platform.AdoptContainer(external)

	c := windowstack.New(windowstack.Options{Platform: platform})
	require.NoError(t, c.Open(hosttest.NewScreen(log, "A"), windowstack.OpenOptions{}))

	assert.Equal(t, 1, c.Size())
	assert.Equal(t, external, platform.Container())
	assert.Equal(t, []string{"A"}, host.Last().Children())
}

func TestNewContainerFailure(t *testing.T) {
	c, host, log := newStackController(t)
	host.NewErr = errors.New("no display")

	err := c.Open(hosttest.NewScreen(log, "R"), windowstack.OpenOptions{})

	assert.ErrorIs(t, err, host.NewErr)
	assert.True(t, c.Platform().NeedsRoot())
}

func TestNewRequiresPlatform(t *testing.T) {
	assert.Panics(t, func() { windowstack.New(windowstack.Options{}) })
}
