// Package scene wraps simulated scene entities behind typed accessors.
// Each wrapper resolves its name to a server handle once, at
// construction, and translates the remote API's status codes into the
// sim error taxonomy.
package scene

import (
	"fmt"

	"github.com/simverse/simverse/internal/observability/log"
	"github.com/simverse/simverse/pkg/vec"
	"github.com/simverse/simverse/remoteapi"
	"github.com/simverse/simverse/sim"
)

// NoRounding disables rounding of numeric outputs.
const NoRounding = -1

type objectState uint8

const (
	stateLive objectState = iota
	stateRemoved
)

// Object wraps a generic scene entity. Once removed, an object is
// terminal: every handle-dependent operation fails with ErrRemoved.
type Object struct {
	sess   *sim.Session
	logger log.Log
	name   string
	state  objectState
	handle remoteapi.Handle
}

// NewObject resolves name to a handle and wraps the entity. There is
// no partial result: on any failure no object is returned.
func NewObject(sess *sim.Session, name string) (*Object, error) {
	if name == "" {
		return nil, fmt.Errorf("resolve object handle: %w", sim.ErrMissingName)
	}
	if err := sess.Guard(); err != nil {
		return nil, fmt.Errorf("resolve handle to %q: %w", name, err)
	}
	h, st := sess.API().ObjectHandle(name)
	if st != remoteapi.StatusOK {
		return nil, sim.ServerErr(fmt.Sprintf("resolve handle to %q", name), st)
	}
	return &Object{
		sess:   sess,
		logger: sess.Logger().With(log.String("object", name)),
		name:   name,
		state:  stateLive,
		handle: h,
	}, nil
}

// Name returns the name the object was constructed with.
func (o *Object) Name() string {
	return o.name
}

// Handle returns the server handle, or RemovedHandle after removal.
func (o *Object) Handle() remoteapi.Handle {
	if o.state == stateRemoved {
		return remoteapi.RemovedHandle
	}
	return o.handle
}

// Session returns the session the object belongs to.
func (o *Object) Session() *sim.Session {
	return o.sess
}

// guard rejects use of a removed object or a dead session.
func (o *Object) guard() error {
	if o.state == stateRemoved {
		return sim.ErrRemoved
	}
	return o.sess.Guard()
}

// liveHandle yields the handle when the object is still usable.
func (o *Object) liveHandle() (remoteapi.Handle, error) {
	if err := o.guard(); err != nil {
		return remoteapi.NoHandle, err
	}
	return o.handle, nil
}

// Option adjusts a kinematic mutator call.
type Option func(*options)

type options struct {
	allowInSim bool
}

// AllowInSim lets a kinematic mutator proceed even while the
// simulation is running.
func AllowInSim() Option {
	return func(o *options) { o.allowInSim = true }
}

// guardMutation blocks kinematic edits while the simulation runs,
// unless the caller overrode the check.
func (o *Object) guardMutation(opts []Option) error {
	var set options
	for _, opt := range opts {
		opt(&set)
	}
	if set.allowInSim {
		return nil
	}
	running, st := o.sess.API().SimulationRunning()
	if st != remoteapi.StatusOK {
		return sim.ServerErr("retrieve simulation state", st)
	}
	if running {
		return sim.ErrSimulationRunning
	}
	return nil
}

// Position retrieves the object position in the given reference frame,
// rounded to prec decimal digits (NoRounding leaves it raw).
func (o *Object) Position(rel Ref, prec int) (vec.V3, error) {
	h, err := o.liveHandle()
	if err != nil {
		return vec.V3{}, fmt.Errorf("retrieve position of %q: %w", o.name, err)
	}
	relH, err := rel.resolve()
	if err != nil {
		return vec.V3{}, fmt.Errorf("retrieve position of %q: %w", o.name, err)
	}
	pos, st := o.sess.API().ObjectPosition(h, relH)
	if st != remoteapi.StatusOK {
		return vec.V3{}, sim.ServerErr(fmt.Sprintf("retrieve position of %q", o.name), st)
	}
	return vec.V3(pos).Round(prec), nil
}

// SetPosition moves the object in the given reference frame. While the
// simulation runs the edit is refused unless AllowInSim is passed.
func (o *Object) SetPosition(pos vec.V3, rel Ref, opts ...Option) error {
	h, err := o.liveHandle()
	if err != nil {
		return fmt.Errorf("set position of %q: %w", o.name, err)
	}
	if err := o.guardMutation(opts); err != nil {
		return fmt.Errorf("set position of %q: %w", o.name, err)
	}
	relH, err := rel.resolve()
	if err != nil {
		return fmt.Errorf("set position of %q: %w", o.name, err)
	}
	if st := o.sess.API().SetObjectPosition(h, relH, [3]float64(pos)); st != remoteapi.StatusOK {
		return sim.ServerErr(fmt.Sprintf("set position of %q", o.name), st)
	}
	return nil
}

// Orientation retrieves the object orientation as Euler angles about
// the x, y, and z axes of the reference frame, each in (-pi, pi].
func (o *Object) Orientation(rel Ref, prec int) (vec.V3, error) {
	h, err := o.liveHandle()
	if err != nil {
		return vec.V3{}, fmt.Errorf("retrieve orientation of %q: %w", o.name, err)
	}
	relH, err := rel.resolve()
	if err != nil {
		return vec.V3{}, fmt.Errorf("retrieve orientation of %q: %w", o.name, err)
	}
	euler, st := o.sess.API().ObjectOrientation(h, relH)
	if st != remoteapi.StatusOK {
		return vec.V3{}, sim.ServerErr(fmt.Sprintf("retrieve orientation of %q", o.name), st)
	}
	return vec.V3(euler).Round(prec), nil
}

// SetOrientation rotates the object. Euler angles must each lie in
// (-pi, pi]. While the simulation runs the edit is refused unless
// AllowInSim is passed.
func (o *Object) SetOrientation(euler vec.V3, rel Ref, opts ...Option) error {
	for _, a := range euler {
		if !vec.InEulerRange(a) {
			return fmt.Errorf("set orientation of %q: euler angle %v out of range (-pi, pi]", o.name, a)
		}
	}
	h, err := o.liveHandle()
	if err != nil {
		return fmt.Errorf("set orientation of %q: %w", o.name, err)
	}
	if err := o.guardMutation(opts); err != nil {
		return fmt.Errorf("set orientation of %q: %w", o.name, err)
	}
	relH, err := rel.resolve()
	if err != nil {
		return fmt.Errorf("set orientation of %q: %w", o.name, err)
	}
	if st := o.sess.API().SetObjectOrientation(h, relH, [3]float64(euler)); st != remoteapi.StatusOK {
		return sim.ServerErr(fmt.Sprintf("set orientation of %q", o.name), st)
	}
	return nil
}

// ParentHandle retrieves the handle of the object's parent, NoHandle
// when the object has none.
func (o *Object) ParentHandle() (remoteapi.Handle, error) {
	h, err := o.liveHandle()
	if err != nil {
		return remoteapi.NoHandle, fmt.Errorf("retrieve parent of %q: %w", o.name, err)
	}
	parent, st := o.sess.API().ObjectParent(h)
	if st != remoteapi.StatusOK {
		return remoteapi.NoHandle, sim.ServerErr(fmt.Sprintf("retrieve parent of %q", o.name), st)
	}
	return parent, nil
}

// SetParent reparents the object. World detaches it. With keepInPlace
// the object keeps its absolute pose across the change.
func (o *Object) SetParent(parent Ref, keepInPlace bool) error {
	h, err := o.liveHandle()
	if err != nil {
		return fmt.Errorf("set parent of %q: %w", o.name, err)
	}
	parentH, err := parent.resolve()
	if err != nil {
		return fmt.Errorf("set parent of %q: %w", o.name, err)
	}
	if st := o.sess.API().SetObjectParent(h, parentH, keepInPlace); st != remoteapi.StatusOK {
		return sim.ServerErr(fmt.Sprintf("set parent of %q", o.name), st)
	}
	return nil
}

var bboxParams = [6]remoteapi.ObjectFloatParam{
	remoteapi.ParamBBoxMinX,
	remoteapi.ParamBBoxMinY,
	remoteapi.ParamBBoxMinZ,
	remoteapi.ParamBBoxMaxX,
	remoteapi.ParamBBoxMaxY,
	remoteapi.ParamBBoxMaxZ,
}

// BoundingBox retrieves the object-local bounding box limits. The
// server reports the limits slightly imprecisely (around the 6th
// decimal digit), so they are rounded to the fixed float precision.
func (o *Object) BoundingBox() (min, max vec.V3, err error) {
	h, err := o.liveHandle()
	if err != nil {
		return vec.V3{}, vec.V3{}, fmt.Errorf("retrieve bounding box of %q: %w", o.name, err)
	}
	var limits [6]float64
	for i, param := range bboxParams {
		v, st := o.sess.API().ObjectFloatParam(h, param)
		if st != remoteapi.StatusOK {
			return vec.V3{}, vec.V3{}, sim.ServerErr(fmt.Sprintf("retrieve bounding box of %q", o.name), st)
		}
		limits[i] = vec.Round(v, sim.FloatPrec)
	}
	min = vec.V3{limits[0], limits[1], limits[2]}
	max = vec.V3{limits[3], limits[4], limits[5]}
	return min, max, nil
}

// CallScript invokes a function in a script attached to the object.
func (o *Object) CallScript(script remoteapi.ScriptType, fn string, args remoteapi.ScriptArgs) (remoteapi.ScriptResult, error) {
	if script != remoteapi.ScriptChild && script != remoteapi.ScriptCustomization {
		return remoteapi.ScriptResult{}, fmt.Errorf("call %s on %q: %w", fn, o.name, sim.ErrBadScriptType)
	}
	if err := o.guard(); err != nil {
		return remoteapi.ScriptResult{}, fmt.Errorf("call %s on %q: %w", fn, o.name, err)
	}
	res, st := o.sess.API().CallScriptFunc(script, o.name, fn, args)
	if st != remoteapi.StatusOK {
		return remoteapi.ScriptResult{}, sim.ServerErr(fmt.Sprintf("call %s on %q", fn, o.name), st)
	}
	return res, nil
}

// Remove deletes the object from the scene. The wrapper becomes
// terminal: any further handle-dependent call, including a second
// Remove, fails with ErrRemoved.
func (o *Object) Remove() error {
	h, err := o.liveHandle()
	if err != nil {
		return fmt.Errorf("remove %q: %w", o.name, err)
	}
	if st := o.sess.API().RemoveObject(h); st != remoteapi.StatusOK {
		return sim.ServerErr(fmt.Sprintf("remove %q", o.name), st)
	}
	o.state = stateRemoved
	o.logger.Debug("Object removed from scene")
	return nil
}
