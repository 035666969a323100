// Package remoteapi defines the boundary contract with the simulator's
// remote API server: an opaque handle space, a status-code convention,
// and the set of blocking operations the SDK wrappers are built on.
//
// Every call is synchronous. A call returns its payload together with a
// Status; StatusOK means success, anything else is interpreted by the
// caller. Transport-level faults surface as StatusLocalError.
package remoteapi

import "fmt"

// Handle is an opaque numeric identifier assigned by the server to a
// scene entity or collection.
type Handle int

const (
	// NoHandle marks an unset handle. It doubles as the reference
	// handle for the absolute frame and the "no parent" parent.
	NoHandle Handle = -1

	// RemovedHandle is the wire value for an entity that has been
	// removed from the scene.
	RemovedHandle Handle = -2
)

// Status is the result code of a remote call.
type Status int

const (
	StatusOK          Status = 0
	StatusNoValue     Status = 1 // server has no value ready for this request
	StatusTimeout     Status = 2
	StatusRemoteError Status = 8  // server rejected or failed the operation
	StatusLocalError  Status = 32 // transport fault, call never completed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoValue:
		return "novalue"
	case StatusTimeout:
		return "timeout"
	case StatusRemoteError:
		return "remote error"
	case StatusLocalError:
		return "local error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// GroupDataKind selects which per-member data a collection bulk query
// returns.
type GroupDataKind int

const (
	GroupNames        GroupDataKind = 0
	GroupPositions    GroupDataKind = 3
	GroupOrientations GroupDataKind = 5
)

// GroupData is the flat payload of a collection bulk query. Positions
// and orientations arrive as three consecutive floats per member.
type GroupData struct {
	Names  []string  `json:"names,omitempty"`
	Floats []float64 `json:"floats,omitempty"`
}

// ObjectFloatParam identifies a per-object float parameter.
type ObjectFloatParam int

// Object-local bounding box limits.
const (
	ParamBBoxMinX ObjectFloatParam = 15
	ParamBBoxMinY ObjectFloatParam = 16
	ParamBBoxMinZ ObjectFloatParam = 17
	ParamBBoxMaxX ObjectFloatParam = 18
	ParamBBoxMaxY ObjectFloatParam = 19
	ParamBBoxMaxZ ObjectFloatParam = 20
)

// IntParam identifies a server-level integer parameter.
type IntParam int

const (
	ParamProgramVersion IntParam = 0
	ParamDynamicEngine  IntParam = 8
)

// FloatParam identifies a server-level float parameter.
type FloatParam int

const (
	ParamSimTimeStep    FloatParam = 2
	ParamDynamicStep    FloatParam = 3
)

// StringParam identifies a server-level string parameter.
type StringParam int

const (
	ParamScenePath StringParam = 13
)

// ScriptType selects which script attached to an object a call targets.
type ScriptType int

const (
	ScriptChild ScriptType = iota
	ScriptCustomization
)

func (t ScriptType) String() string {
	switch t {
	case ScriptChild:
		return "child"
	case ScriptCustomization:
		return "customization"
	default:
		return fmt.Sprintf("scripttype(%d)", int(t))
	}
}

// ScriptArgs carries the inputs of a script function call.
type ScriptArgs struct {
	Ints    []int     `json:"ints,omitempty"`
	Floats  []float64 `json:"floats,omitempty"`
	Strings []string  `json:"strings,omitempty"`
}

// ScriptResult carries the outputs of a script function call.
type ScriptResult struct {
	Ints    []int     `json:"ints,omitempty"`
	Floats  []float64 `json:"floats,omitempty"`
	Strings []string  `json:"strings,omitempty"`
}

// ProximityReading is the payload of a proximity sensor read. Point is
// the detected point in the sensor frame; its Z component is the depth
// along the sensor axis. Point is meaningful only when Detected is set.
type ProximityReading struct {
	Detected bool       `json:"detected"`
	Point    [3]float64 `json:"point"`
}

// ImageData is a vision sensor capture as delivered by the server:
// signed bytes, rows bottom-up, three bytes per pixel unless the
// capture was requested grayscale.
type ImageData struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Grayscale bool   `json:"grayscale"`
	Pixels    []int8 `json:"pixels"`
}

// Client is a blocking connection to the remote API server. All
// operations are serialized on a single underlying connection; none of
// them retries.
type Client interface {
	// Handle resolution.
	ObjectHandle(name string) (Handle, Status)
	CollectionHandle(name string) (Handle, Status)

	// Object state.
	ObjectGroupData(h Handle, kind GroupDataKind) (GroupData, Status)
	ObjectPosition(h, rel Handle) ([3]float64, Status)
	SetObjectPosition(h, rel Handle, pos [3]float64) Status
	ObjectOrientation(h, rel Handle) ([3]float64, Status)
	SetObjectOrientation(h, rel Handle, euler [3]float64) Status
	ObjectParent(h Handle) (Handle, Status)
	SetObjectParent(h, parent Handle, keepInPlace bool) Status
	ObjectFloatParam(h Handle, param ObjectFloatParam) (float64, Status)
	RemoveObject(h Handle) Status

	// Entity-specific operations.
	SetJointTargetVelocity(h Handle, velocity float64) Status
	ReadProximitySensor(h Handle) (ProximityReading, Status)
	VisionSensorImage(h Handle, grayscale bool) (ImageData, Status)
	CallScriptFunc(script ScriptType, scriptName, fn string, args ScriptArgs) (ScriptResult, Status)

	// Server parameters.
	IntParam(id IntParam) (int, Status)
	FloatParam(id FloatParam) (float64, Status)
	StringParam(id StringParam) (string, Status)

	// Simulation control.
	SetSynchronous(enable bool) Status
	StartSimulation() Status
	StopSimulation() Status
	SimulationRunning() (bool, Status)
	Step() Status

	Close() error
}
