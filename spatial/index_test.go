package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/spatial"
)

// boxObj is a trivial single-shape Object used across the test suite.
type boxObj struct {
	box   geom.Box
	layer int
}

func (b *boxObj) ShapeCount() int            { return 1 }
func (b *boxObj) ShapeBox(int) geom.Box      { return b.box }
func (b *boxObj) ShapeLayer(int) int         { return b.layer }

func TestIndexInsertAndQuery(t *testing.T) {
	ix := spatial.NewIndex()
	a := &boxObj{box: geom.Box{Lo: geom.Point{X: 0, Y: 0}, Hi: geom.Point{X: 10, Y: 10}}, layer: 0}
	b := &boxObj{box: geom.Box{Lo: geom.Point{X: 100, Y: 100}, Hi: geom.Point{X: 110, Y: 110}}, layer: 0}
	c := &boxObj{box: geom.Box{Lo: geom.Point{X: 5, Y: 5}, Hi: geom.Point{X: 15, Y: 15}}, layer: 1}

	require.NoError(t, ix.Insert(a))
	require.NoError(t, ix.Insert(b))
	require.NoError(t, ix.Insert(c))
	require.Equal(t, 3, ix.Len())

	hits := ix.Query(geom.Box{Lo: geom.Point{X: 0, Y: 0}, Hi: geom.Point{X: 20, Y: 20}}, spatial.AnyLayer)
	require.Len(t, hits, 2, "expects a and c to overlap the query box, b to be out of range")

	hits = ix.Query(geom.Box{Lo: geom.Point{X: 0, Y: 0}, Hi: geom.Point{X: 20, Y: 20}}, 0)
	require.Len(t, hits, 1, "layer filter should exclude c (layer 1)")
	require.Same(t, a, hits[0].Object)
}

func TestIndexRemove(t *testing.T) {
	ix := spatial.NewIndex()
	a := &boxObj{box: geom.Box{Lo: geom.Point{X: 0, Y: 0}, Hi: geom.Point{X: 10, Y: 10}}}
	b := &boxObj{box: geom.Box{Lo: geom.Point{X: 20, Y: 20}, Hi: geom.Point{X: 30, Y: 30}}}
	require.NoError(t, ix.Insert(a))
	require.NoError(t, ix.Insert(b))

	require.NoError(t, ix.Remove(a))
	require.Equal(t, 1, ix.Len())
	require.False(t, ix.Contains(a))
	require.ErrorIs(t, ix.Remove(a), spatial.ErrObjectNotIndexed)

	hits := ix.Query(geom.Box{Lo: geom.Point{X: 0, Y: 0}, Hi: geom.Point{X: 100, Y: 100}}, spatial.AnyLayer)
	require.Len(t, hits, 1)
	require.Same(t, b, hits[0].Object)
}

func TestIndexRemoveReinsertKeepsConsistentBoxes(t *testing.T) {
	ix := spatial.NewIndex()
	objs := make([]*boxObj, 0, 20)
	for i := 0; i < 20; i++ {
		o := &boxObj{box: geom.Box{
			Lo: geom.Point{X: int32(i * 10), Y: int32(i * 10)},
			Hi: geom.Point{X: int32(i*10 + 5), Y: int32(i*10 + 5)},
		}}
		require.NoError(t, ix.Insert(o))
		objs = append(objs, o)
	}
	// Remove every other object, then reinsert with a moved box, mimicking
	// the board model's remove-before-mutate contract.
	for i := 0; i < len(objs); i += 2 {
		require.NoError(t, ix.Remove(objs[i]))
		objs[i].box = objs[i].box.Expand(1)
		require.NoError(t, ix.Insert(objs[i]))
	}
	require.Equal(t, 20, ix.Len())

	all := ix.Query(geom.Box{Lo: geom.Point{X: -1000, Y: -1000}, Hi: geom.Point{X: 1000, Y: 1000}}, spatial.AnyLayer)
	require.Len(t, all, 20)
}

func TestIndexNilObject(t *testing.T) {
	ix := spatial.NewIndex()
	require.ErrorIs(t, ix.Insert(nil), spatial.ErrNilObject)
	require.ErrorIs(t, ix.Remove(nil), spatial.ErrNilObject)
}
