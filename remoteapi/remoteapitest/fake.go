// Package remoteapitest provides an in-memory remote API client for
// tests. The fake holds a scriptable scene and records every call; a
// forced status per operation lets tests exercise error paths without
// a server.
package remoteapitest

import (
	"sync"

	"github.com/simverse/simverse/remoteapi"
)

var _ remoteapi.Client = (*Fake)(nil)

// Object is a fake scene entity.
type Object struct {
	Handle      remoteapi.Handle
	Position    [3]float64
	Orientation [3]float64
	Parent      remoteapi.Handle
	BBox        map[remoteapi.ObjectFloatParam]float64
	Velocity    float64
	Proximity   remoteapi.ProximityReading
	Image       remoteapi.ImageData
	Removed     bool
}

// Fake is a scriptable in-memory remote API client.
type Fake struct {
	mu sync.Mutex

	nextHandle remoteapi.Handle
	objects    map[string]*Object
	byHandle   map[remoteapi.Handle]*Object

	collections map[string]remoteapi.Handle
	groupData   map[remoteapi.Handle]map[remoteapi.GroupDataKind]remoteapi.GroupData

	intParams    map[remoteapi.IntParam]int
	floatParams  map[remoteapi.FloatParam]float64
	stringParams map[remoteapi.StringParam]string

	// Fail forces the given status for an operation, by method name.
	Fail map[string]remoteapi.Status

	Running     bool
	Synchronous bool
	Steps       int
	Closed      bool

	// Calls records method names in invocation order.
	Calls []string

	ScriptFunc func(script remoteapi.ScriptType, scriptName, fn string, args remoteapi.ScriptArgs) (remoteapi.ScriptResult, remoteapi.Status)
}

// New returns an empty fake scene.
func New() *Fake {
	return &Fake{
		nextHandle:   100,
		objects:      make(map[string]*Object),
		byHandle:     make(map[remoteapi.Handle]*Object),
		collections:  make(map[string]remoteapi.Handle),
		groupData:    make(map[remoteapi.Handle]map[remoteapi.GroupDataKind]remoteapi.GroupData),
		intParams:    make(map[remoteapi.IntParam]int),
		floatParams:  make(map[remoteapi.FloatParam]float64),
		stringParams: make(map[remoteapi.StringParam]string),
		Fail:         make(map[string]remoteapi.Status),
	}
}

// AddObject registers a named entity and returns it for further setup.
func (f *Fake) AddObject(name string) *Object {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj := &Object{
		Handle: f.nextHandle,
		Parent: remoteapi.NoHandle,
		BBox:   make(map[remoteapi.ObjectFloatParam]float64),
	}
	f.nextHandle++
	f.objects[name] = obj
	f.byHandle[obj.Handle] = obj
	return obj
}

// AddCollection registers a named collection with its bulk-query data.
func (f *Fake) AddCollection(name string, data map[remoteapi.GroupDataKind]remoteapi.GroupData) remoteapi.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.nextHandle
	f.nextHandle++
	f.collections[name] = h
	f.groupData[h] = data
	return h
}

// SetIntParam seeds a server-level integer parameter.
func (f *Fake) SetIntParam(id remoteapi.IntParam, v int) { f.intParams[id] = v }

// SetFloatParam seeds a server-level float parameter.
func (f *Fake) SetFloatParam(id remoteapi.FloatParam, v float64) { f.floatParams[id] = v }

// SetStringParam seeds a server-level string parameter.
func (f *Fake) SetStringParam(id remoteapi.StringParam, v string) { f.stringParams[id] = v }

// record notes the call and returns a forced status, if any.
func (f *Fake) record(op string) (remoteapi.Status, bool) {
	f.Calls = append(f.Calls, op)
	st, ok := f.Fail[op]
	return st, ok
}

// live resolves a handle to a non-removed entity.
func (f *Fake) live(h remoteapi.Handle) (*Object, bool) {
	obj, ok := f.byHandle[h]
	if !ok || obj.Removed {
		return nil, false
	}
	return obj, true
}

func (f *Fake) ObjectHandle(name string) (remoteapi.Handle, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("ObjectHandle"); ok {
		return remoteapi.NoHandle, st
	}
	obj, ok := f.objects[name]
	if !ok || obj.Removed {
		return remoteapi.NoHandle, remoteapi.StatusRemoteError
	}
	return obj.Handle, remoteapi.StatusOK
}

func (f *Fake) CollectionHandle(name string) (remoteapi.Handle, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("CollectionHandle"); ok {
		return remoteapi.NoHandle, st
	}
	h, ok := f.collections[name]
	if !ok {
		return remoteapi.NoHandle, remoteapi.StatusRemoteError
	}
	return h, remoteapi.StatusOK
}

func (f *Fake) ObjectGroupData(h remoteapi.Handle, kind remoteapi.GroupDataKind) (remoteapi.GroupData, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("ObjectGroupData"); ok {
		return remoteapi.GroupData{}, st
	}
	data, ok := f.groupData[h]
	if !ok {
		return remoteapi.GroupData{}, remoteapi.StatusRemoteError
	}
	return data[kind], remoteapi.StatusOK
}

func (f *Fake) ObjectPosition(h, rel remoteapi.Handle) ([3]float64, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("ObjectPosition"); ok {
		return [3]float64{}, st
	}
	obj, ok := f.live(h)
	if !ok {
		return [3]float64{}, remoteapi.StatusRemoteError
	}
	return obj.Position, remoteapi.StatusOK
}

func (f *Fake) SetObjectPosition(h, rel remoteapi.Handle, pos [3]float64) remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("SetObjectPosition"); ok {
		return st
	}
	obj, ok := f.live(h)
	if !ok {
		return remoteapi.StatusRemoteError
	}
	obj.Position = pos
	return remoteapi.StatusOK
}

func (f *Fake) ObjectOrientation(h, rel remoteapi.Handle) ([3]float64, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("ObjectOrientation"); ok {
		return [3]float64{}, st
	}
	obj, ok := f.live(h)
	if !ok {
		return [3]float64{}, remoteapi.StatusRemoteError
	}
	return obj.Orientation, remoteapi.StatusOK
}

func (f *Fake) SetObjectOrientation(h, rel remoteapi.Handle, euler [3]float64) remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("SetObjectOrientation"); ok {
		return st
	}
	obj, ok := f.live(h)
	if !ok {
		return remoteapi.StatusRemoteError
	}
	obj.Orientation = euler
	return remoteapi.StatusOK
}

func (f *Fake) ObjectParent(h remoteapi.Handle) (remoteapi.Handle, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("ObjectParent"); ok {
		return remoteapi.NoHandle, st
	}
	obj, ok := f.live(h)
	if !ok {
		return remoteapi.NoHandle, remoteapi.StatusRemoteError
	}
	return obj.Parent, remoteapi.StatusOK
}

func (f *Fake) SetObjectParent(h, parent remoteapi.Handle, keepInPlace bool) remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("SetObjectParent"); ok {
		return st
	}
	obj, ok := f.live(h)
	if !ok {
		return remoteapi.StatusRemoteError
	}
	obj.Parent = parent
	return remoteapi.StatusOK
}

func (f *Fake) ObjectFloatParam(h remoteapi.Handle, param remoteapi.ObjectFloatParam) (float64, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("ObjectFloatParam"); ok {
		return 0, st
	}
	obj, ok := f.live(h)
	if !ok {
		return 0, remoteapi.StatusRemoteError
	}
	v, ok := obj.BBox[param]
	if !ok {
		return 0, remoteapi.StatusRemoteError
	}
	return v, remoteapi.StatusOK
}

func (f *Fake) RemoveObject(h remoteapi.Handle) remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("RemoveObject"); ok {
		return st
	}
	obj, ok := f.live(h)
	if !ok {
		return remoteapi.StatusRemoteError
	}
	obj.Removed = true
	return remoteapi.StatusOK
}

func (f *Fake) SetJointTargetVelocity(h remoteapi.Handle, velocity float64) remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("SetJointTargetVelocity"); ok {
		return st
	}
	obj, ok := f.live(h)
	if !ok {
		return remoteapi.StatusRemoteError
	}
	obj.Velocity = velocity
	return remoteapi.StatusOK
}

func (f *Fake) ReadProximitySensor(h remoteapi.Handle) (remoteapi.ProximityReading, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("ReadProximitySensor"); ok {
		return remoteapi.ProximityReading{}, st
	}
	obj, ok := f.live(h)
	if !ok {
		return remoteapi.ProximityReading{}, remoteapi.StatusRemoteError
	}
	return obj.Proximity, remoteapi.StatusOK
}

func (f *Fake) VisionSensorImage(h remoteapi.Handle, grayscale bool) (remoteapi.ImageData, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("VisionSensorImage"); ok {
		return remoteapi.ImageData{}, st
	}
	obj, ok := f.live(h)
	if !ok {
		return remoteapi.ImageData{}, remoteapi.StatusRemoteError
	}
	return obj.Image, remoteapi.StatusOK
}

func (f *Fake) CallScriptFunc(script remoteapi.ScriptType, scriptName, fn string, args remoteapi.ScriptArgs) (remoteapi.ScriptResult, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("CallScriptFunc"); ok {
		return remoteapi.ScriptResult{}, st
	}
	if f.ScriptFunc != nil {
		return f.ScriptFunc(script, scriptName, fn, args)
	}
	return remoteapi.ScriptResult{}, remoteapi.StatusOK
}

func (f *Fake) IntParam(id remoteapi.IntParam) (int, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("IntParam"); ok {
		return 0, st
	}
	v, ok := f.intParams[id]
	if !ok {
		return 0, remoteapi.StatusRemoteError
	}
	return v, remoteapi.StatusOK
}

func (f *Fake) FloatParam(id remoteapi.FloatParam) (float64, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("FloatParam"); ok {
		return 0, st
	}
	v, ok := f.floatParams[id]
	if !ok {
		return 0, remoteapi.StatusRemoteError
	}
	return v, remoteapi.StatusOK
}

func (f *Fake) StringParam(id remoteapi.StringParam) (string, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("StringParam"); ok {
		return "", st
	}
	v, ok := f.stringParams[id]
	if !ok {
		return "", remoteapi.StatusRemoteError
	}
	return v, remoteapi.StatusOK
}

func (f *Fake) SetSynchronous(enable bool) remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("SetSynchronous"); ok {
		return st
	}
	f.Synchronous = enable
	return remoteapi.StatusOK
}

func (f *Fake) StartSimulation() remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("StartSimulation"); ok {
		return st
	}
	f.Running = true
	return remoteapi.StatusOK
}

func (f *Fake) StopSimulation() remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("StopSimulation"); ok {
		return st
	}
	f.Running = false
	return remoteapi.StatusOK
}

func (f *Fake) SimulationRunning() (bool, remoteapi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("SimulationRunning"); ok {
		return false, st
	}
	return f.Running, remoteapi.StatusOK
}

func (f *Fake) Step() remoteapi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.record("Step"); ok {
		return st
	}
	f.Steps++
	return remoteapi.StatusOK
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
