package scene_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse/pkg/vec"
	"github.com/simverse/simverse/remoteapi"
	"github.com/simverse/simverse/remoteapi/remoteapitest"
	"github.com/simverse/simverse/scene"
	"github.com/simverse/simverse/sim"
)

func newScene(t *testing.T) (*sim.Session, *remoteapitest.Fake) {
	t.Helper()
	fake := remoteapitest.New()
	return sim.Wrap(fake, sim.DefaultConfig()), fake
}

func TestNewObject(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot")

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)
	assert.Equal(t, "robot", obj.Name())
	assert.GreaterOrEqual(t, int(obj.Handle()), 0)
}

func TestNewObjectUnknownName(t *testing.T) {
	sess, _ := newScene(t)

	obj, err := scene.NewObject(sess, "no_such_object")
	assert.ErrorIs(t, err, sim.ErrServer)
	assert.Nil(t, obj)
}

func TestNewObjectMissingName(t *testing.T) {
	sess, _ := newScene(t)

	_, err := scene.NewObject(sess, "")
	assert.ErrorIs(t, err, sim.ErrMissingName)
}

func TestNewObjectNotConnected(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot")
	require.NoError(t, sess.Disconnect())

	_, err := scene.NewObject(sess, "robot")
	assert.ErrorIs(t, err, sim.ErrNotConnected)
}

func TestPosition(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot").Position = [3]float64{1.23456, -2.5, 0.125}

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	pos, err := obj.Position(scene.World, scene.NoRounding)
	require.NoError(t, err)
	assert.Equal(t, vec.V3{1.23456, -2.5, 0.125}, pos)

	pos, err = obj.Position(scene.World, 2)
	require.NoError(t, err)
	assert.Equal(t, vec.V3{1.23, -2.5, 0.13}, pos)
}

func TestSetPosition(t *testing.T) {
	sess, fake := newScene(t)
	robot := fake.AddObject("robot")

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	require.NoError(t, obj.SetPosition(vec.V3{1, 2, 3}, scene.World))
	assert.Equal(t, [3]float64{1, 2, 3}, robot.Position)
}

func TestSetPositionWhileRunning(t *testing.T) {
	sess, fake := newScene(t)
	robot := fake.AddObject("robot")
	fake.Running = true

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	err = obj.SetPosition(vec.V3{1, 2, 3}, scene.World)
	assert.ErrorIs(t, err, sim.ErrSimulationRunning)
	assert.Equal(t, [3]float64{}, robot.Position)

	// the explicit override bypasses the safety check
	require.NoError(t, obj.SetPosition(vec.V3{1, 2, 3}, scene.World, scene.AllowInSim()))
	assert.Equal(t, [3]float64{1, 2, 3}, robot.Position)
}

func TestRelativePosition(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot").Position = [3]float64{1, 1, 0}
	fake.AddObject("base")

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)
	base, err := scene.NewObject(sess, "base")
	require.NoError(t, err)

	_, err = obj.Position(scene.RefTo(base), scene.NoRounding)
	require.NoError(t, err)

	// a reference to a removed object fails like any other use of it
	require.NoError(t, base.Remove())
	_, err = obj.Position(scene.RefTo(base), scene.NoRounding)
	assert.ErrorIs(t, err, sim.ErrRemoved)
}

func TestOrientation(t *testing.T) {
	sess, fake := newScene(t)
	robot := fake.AddObject("robot")
	robot.Orientation = [3]float64{0.15708, -1.5708, 3.14159}

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	euler, err := obj.Orientation(scene.World, 3)
	require.NoError(t, err)
	assert.Equal(t, vec.V3{0.157, -1.571, 3.142}, euler)

	require.NoError(t, obj.SetOrientation(vec.V3{0, math.Pi, -1}, scene.World))
	assert.Equal(t, [3]float64{0, math.Pi, -1}, robot.Orientation)
}

func TestSetOrientationOutOfRange(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot")

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	assert.Error(t, obj.SetOrientation(vec.V3{0, 0, -math.Pi}, scene.World))
	assert.Error(t, obj.SetOrientation(vec.V3{4, 0, 0}, scene.World))
}

func TestSetOrientationWhileRunning(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot")
	fake.Running = true

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	assert.ErrorIs(t, obj.SetOrientation(vec.V3{0, 0, 1}, scene.World), sim.ErrSimulationRunning)
	assert.NoError(t, obj.SetOrientation(vec.V3{0, 0, 1}, scene.World, scene.AllowInSim()))
}

func TestParent(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot")
	fake.AddObject("base")

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)
	base, err := scene.NewObject(sess, "base")
	require.NoError(t, err)

	parent, err := obj.ParentHandle()
	require.NoError(t, err)
	assert.Equal(t, remoteapi.NoHandle, parent)

	require.NoError(t, obj.SetParent(scene.RefTo(base), true))
	parent, err = obj.ParentHandle()
	require.NoError(t, err)
	assert.Equal(t, base.Handle(), parent)

	// World detaches
	require.NoError(t, obj.SetParent(scene.World, true))
	parent, err = obj.ParentHandle()
	require.NoError(t, err)
	assert.Equal(t, remoteapi.NoHandle, parent)
}

func TestBoundingBox(t *testing.T) {
	sess, fake := newScene(t)
	robot := fake.AddObject("robot")
	// limits arrive slightly imprecise around the 6th decimal digit
	robot.BBox[remoteapi.ParamBBoxMinX] = -0.1000003
	robot.BBox[remoteapi.ParamBBoxMinY] = -0.2000001
	robot.BBox[remoteapi.ParamBBoxMinZ] = 0.0000002
	robot.BBox[remoteapi.ParamBBoxMaxX] = 0.1000001
	robot.BBox[remoteapi.ParamBBoxMaxY] = 0.1999999
	robot.BBox[remoteapi.ParamBBoxMaxZ] = 0.3000004

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	min, max, err := obj.BoundingBox()
	require.NoError(t, err)
	assert.Equal(t, vec.V3{-0.1, -0.2, 0}, min)
	assert.Equal(t, vec.V3{0.1, 0.2, 0.3}, max)
}

func TestCallScript(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot")
	fake.ScriptFunc = func(script remoteapi.ScriptType, scriptName, fn string, args remoteapi.ScriptArgs) (remoteapi.ScriptResult, remoteapi.Status) {
		if scriptName != "robot" || fn != "reset" {
			return remoteapi.ScriptResult{}, remoteapi.StatusRemoteError
		}
		return remoteapi.ScriptResult{Floats: []float64{1}}, remoteapi.StatusOK
	}

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	res, err := obj.CallScript(remoteapi.ScriptChild, "reset", remoteapi.ScriptArgs{})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, res.Floats)

	_, err = obj.CallScript(remoteapi.ScriptType(42), "reset", remoteapi.ScriptArgs{})
	assert.ErrorIs(t, err, sim.ErrBadScriptType)
}

func TestRemove(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot")

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)

	require.NoError(t, obj.Remove())
	assert.Equal(t, remoteapi.RemovedHandle, obj.Handle())

	// every handle-dependent operation is now refused
	_, err = obj.Position(scene.World, scene.NoRounding)
	assert.ErrorIs(t, err, sim.ErrRemoved)
	assert.ErrorIs(t, obj.SetPosition(vec.V3{}, scene.World), sim.ErrRemoved)
	_, err = obj.ParentHandle()
	assert.ErrorIs(t, err, sim.ErrRemoved)
	_, _, err = obj.BoundingBox()
	assert.ErrorIs(t, err, sim.ErrRemoved)
	_, err = obj.CallScript(remoteapi.ScriptChild, "reset", remoteapi.ScriptArgs{})
	assert.ErrorIs(t, err, sim.ErrRemoved)

	// removing twice is an error, not a no-op
	assert.ErrorIs(t, obj.Remove(), sim.ErrRemoved)
}

func TestAccessorsNotConnected(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("robot")

	obj, err := scene.NewObject(sess, "robot")
	require.NoError(t, err)
	require.NoError(t, sess.Disconnect())

	_, err = obj.Position(scene.World, scene.NoRounding)
	assert.ErrorIs(t, err, sim.ErrNotConnected)
	assert.ErrorIs(t, obj.Remove(), sim.ErrNotConnected)
}
