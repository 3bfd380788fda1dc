package binding

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shadowkit/internal/bridge"
	"shadowkit/internal/platform"
	"shadowkit/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	typeWidget platform.TypeName = "host.Widget"
	typePlain  platform.TypeName = "host.Plain"
	typeBroken platform.TypeName = "host.Broken"
)

type widget struct{ platform.Base }

func newWidget() *widget { return &widget{Base: platform.NewBase()} }

type widgetShadow struct {
	owner    platform.Handle
	released atomic.Int32
}

func (w *widgetShadow) Release() { w.released.Add(1) }

type fixture struct {
	store  *Store
	builds atomic.Int32
}

func newFixture(t *testing.T, delay time.Duration) *fixture {
	t.Helper()
	f := &fixture{}

	reg := registry.New(nil)
	require.NoError(t, reg.Register(registry.Descriptor{
		Name:   "widget",
		Target: typeWidget,
		Factory: func(ctx registry.Context) (any, error) {
			f.builds.Add(1)
			if delay > 0 {
				time.Sleep(delay)
			}
			return &widgetShadow{owner: ctx.Object.Handle()}, nil
		},
	}))
	require.NoError(t, reg.Register(registry.Descriptor{
		Name:   "broken",
		Target: typeBroken,
		Factory: func(registry.Context) (any, error) {
			return nil, errors.New("no state")
		},
	}))

	f.store = New(reg, bridge.NewCatalog().For(platform.U), nil)
	return f
}

func TestStore_BindReturnsSameShadow(t *testing.T) {
	f := newFixture(t, 0)
	w := newWidget()

	first, err := f.store.Bind(w, typeWidget)
	require.NoError(t, err)
	second, err := f.store.Bind(w, typeWidget)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), f.builds.Load())
	assert.Equal(t, w.Handle(), first.(*widgetShadow).owner)
	assert.Equal(t, 1, f.store.Len())
	assert.Equal(t, platform.U, f.store.Version())
}

func TestStore_DistinctObjectsGetDistinctShadows(t *testing.T) {
	f := newFixture(t, 0)

	a, err := f.store.Bind(newWidget(), typeWidget)
	require.NoError(t, err)
	b, err := f.store.Bind(newWidget(), typeWidget)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, f.store.Len())
}

func TestStore_Passthrough(t *testing.T) {
	f := newFixture(t, 0)

	shadow, err := f.store.Bind(newWidget(), typePlain)
	require.NoError(t, err)
	assert.Nil(t, shadow)
	assert.Equal(t, 0, f.store.Len())
}

func TestStore_ConstructionFailurePublishesNothing(t *testing.T) {
	f := newFixture(t, 0)
	w := newWidget()

	shadow, err := f.store.Bind(w, typeBroken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no state")
	assert.Nil(t, shadow)

	_, ok := f.store.Lookup(w)
	assert.False(t, ok)
	assert.Equal(t, 0, f.store.Len())
}

func TestStore_NilObject(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.store.Bind(nil, typeWidget)
	assert.ErrorIs(t, err, ErrNilObject)
}

func TestStore_ConcurrentFirstBindConstructsOnce(t *testing.T) {
	f := newFixture(t, 20*time.Millisecond)
	w := newWidget()

	const callers = 32
	results := make([]any, callers)
	var start sync.WaitGroup
	start.Add(1)

	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			start.Wait()
			shadow, err := f.store.Bind(w, typeWidget)
			results[i] = shadow
			return err
		})
	}
	start.Done()
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), f.builds.Load())
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestStore_UnbindReleases(t *testing.T) {
	f := newFixture(t, 0)
	w := newWidget()

	shadow, err := f.store.Bind(w, typeWidget)
	require.NoError(t, err)

	f.store.Unbind(w)
	f.store.Unbind(w)
	assert.Equal(t, int32(1), shadow.(*widgetShadow).released.Load())
	assert.Equal(t, 0, f.store.Len())

	rebound, err := f.store.Bind(w, typeWidget)
	require.NoError(t, err)
	assert.NotSame(t, shadow, rebound)
	assert.Equal(t, int32(2), f.builds.Load())
}

func TestStore_UnbindDuringConstruction(t *testing.T) {
	entered := make(chan struct{})
	proceed := make(chan struct{})
	var built []*widgetShadow

	reg := registry.New(nil)
	require.NoError(t, reg.Register(registry.Descriptor{
		Name:   "gated",
		Target: typeWidget,
		Factory: func(ctx registry.Context) (any, error) {
			shadow := &widgetShadow{owner: ctx.Object.Handle()}
			built = append(built, shadow)
			if len(built) == 1 {
				close(entered)
				<-proceed
			}
			return shadow, nil
		},
	}))
	store := New(reg, bridge.NewCatalog().For(platform.U), nil)
	w := newWidget()

	var g errgroup.Group
	g.Go(func() error {
		_, err := store.Bind(w, typeWidget)
		return err
	})

	<-entered
	store.Unbind(w)
	close(proceed)

	err := g.Wait()
	require.ErrorIs(t, err, ErrUnbound)
	assert.Equal(t, 0, store.Len())
	require.Len(t, built, 1)
	assert.Equal(t, int32(1), built[0].released.Load())

	_, ok := store.Lookup(w)
	assert.False(t, ok)

	rebound, err := store.Bind(w, typeWidget)
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.Same(t, built[1], rebound)
	assert.Equal(t, 1, store.Len())
}

func TestStore_Close(t *testing.T) {
	f := newFixture(t, 0)
	a, err := f.store.Bind(newWidget(), typeWidget)
	require.NoError(t, err)
	b, err := f.store.Bind(newWidget(), typeWidget)
	require.NoError(t, err)

	f.store.Close()
	f.store.Close()

	assert.Equal(t, int32(1), a.(*widgetShadow).released.Load())
	assert.Equal(t, int32(1), b.(*widgetShadow).released.Load())
	assert.Equal(t, 0, f.store.Len())

	_, err = f.store.Bind(newWidget(), typeWidget)
	assert.ErrorIs(t, err, ErrClosed)
}
