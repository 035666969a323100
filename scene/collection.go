package scene

import (
	"fmt"

	"github.com/simverse/simverse/pkg/vec"
	"github.com/simverse/simverse/remoteapi"
	"github.com/simverse/simverse/sim"
)

// Collection wraps a named group of scene objects registered on the
// server. Members are queried server-side in bulk; the collection does
// not hold per-member wrappers and carries no removed-state tracking.
type Collection struct {
	sess   *sim.Session
	name   string
	handle remoteapi.Handle
}

// NewCollection resolves name to a collection handle.
func NewCollection(sess *sim.Session, name string) (*Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("resolve collection handle: %w", sim.ErrMissingName)
	}
	if err := sess.Guard(); err != nil {
		return nil, fmt.Errorf("resolve handle to %q: %w", name, err)
	}
	h, st := sess.API().CollectionHandle(name)
	if st != remoteapi.StatusOK {
		return nil, sim.ServerErr(fmt.Sprintf("resolve handle to %q", name), st)
	}
	return &Collection{sess: sess, name: name, handle: h}, nil
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Handle returns the collection handle.
func (c *Collection) Handle() remoteapi.Handle {
	return c.handle
}

// Names retrieves the names of the member objects, one remote call.
func (c *Collection) Names() ([]string, error) {
	data, err := c.groupData(remoteapi.GroupNames, "retrieve names")
	if err != nil {
		return nil, err
	}
	return data.Names, nil
}

// Positions retrieves member positions in the absolute frame, rounded
// to prec decimal digits (NoRounding leaves them raw). One remote
// call; the flat payload is reshaped into one vector per member.
func (c *Collection) Positions(prec int) ([]vec.V3, error) {
	data, err := c.groupData(remoteapi.GroupPositions, "retrieve positions")
	if err != nil {
		return nil, err
	}
	positions, err := vec.Chunk3(data.Floats)
	if err != nil {
		return nil, fmt.Errorf("retrieve positions of %q: %w", c.name, err)
	}
	return vec.RoundAll(positions, prec), nil
}

// Orientations retrieves member orientations as Euler angles about the
// x, y, and z axes of the absolute frame, each in (-pi, pi], rounded
// like Positions.
func (c *Collection) Orientations(prec int) ([]vec.V3, error) {
	data, err := c.groupData(remoteapi.GroupOrientations, "retrieve orientations")
	if err != nil {
		return nil, err
	}
	orientations, err := vec.Chunk3(data.Floats)
	if err != nil {
		return nil, fmt.Errorf("retrieve orientations of %q: %w", c.name, err)
	}
	return vec.RoundAll(orientations, prec), nil
}

func (c *Collection) groupData(kind remoteapi.GroupDataKind, op string) (remoteapi.GroupData, error) {
	if err := c.sess.Guard(); err != nil {
		return remoteapi.GroupData{}, fmt.Errorf("%s of %q: %w", op, c.name, err)
	}
	data, st := c.sess.API().ObjectGroupData(c.handle, kind)
	if st != remoteapi.StatusOK {
		return remoteapi.GroupData{}, sim.ServerErr(fmt.Sprintf("%s of %q", op, c.name), st)
	}
	return data, nil
}
