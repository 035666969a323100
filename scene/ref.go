package scene

import "github.com/simverse/simverse/remoteapi"

// Ref identifies an optional reference object for a call: the world
// frame (or "no parent"), a raw server handle, or another wrapped
// object. The zero value is the world frame.
type Ref struct {
	obj      *Object
	handle   remoteapi.Handle
	isHandle bool
}

// World is the absolute reference frame; as a parent it means "no
// parent".
var World = Ref{}

// RefTo references a wrapped scene object.
func RefTo(o *Object) Ref {
	return Ref{obj: o}
}

// RefHandle references a raw server handle.
func RefHandle(h remoteapi.Handle) Ref {
	return Ref{handle: h, isHandle: true}
}

// resolve yields the server handle the reference stands for. A
// reference to a removed object fails like any other use of it.
func (r Ref) resolve() (remoteapi.Handle, error) {
	if r.obj != nil {
		return r.obj.liveHandle()
	}
	if r.isHandle {
		return r.handle, nil
	}
	return remoteapi.NoHandle, nil
}
