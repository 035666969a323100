package scene

import "github.com/simverse/simverse/sim"

// Dummy wraps a dummy object, a massless marker used as a reference
// point or attachment target.
type Dummy struct {
	*Object
}

// NewDummy resolves name to a dummy object.
func NewDummy(sess *sim.Session, name string) (*Dummy, error) {
	obj, err := NewObject(sess, name)
	if err != nil {
		return nil, err
	}
	return &Dummy{Object: obj}, nil
}
