package ws

import (
	"encoding/json"

	"github.com/simverse/simverse/remoteapi"
)

// Wire frames. A request carries a fresh id; the matching response
// echoes it back together with the xxhash-64 sum of its payload.

type request struct {
	ID     string          `json:"id"`
	Op     string          `json:"op"`
	Params json.RawMessage `json:"params,omitempty"`
}

type response struct {
	ID      string          `json:"id"`
	Status  int             `json:"status"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Sum     uint64          `json:"sum,omitempty"`
}

// Operation names.
const (
	opObjectHandle      = "getObjectHandle"
	opCollectionHandle  = "getCollectionHandle"
	opObjectGroupData   = "getObjectGroupData"
	opObjectPosition    = "getObjectPosition"
	opSetObjectPosition = "setObjectPosition"
	opObjectOrientation = "getObjectOrientation"
	opSetObjectOrient   = "setObjectOrientation"
	opObjectParent      = "getObjectParent"
	opSetObjectParent   = "setObjectParent"
	opObjectFloatParam  = "getObjectFloatParameter"
	opRemoveObject      = "removeObject"
	opSetJointVelocity  = "setJointTargetVelocity"
	opReadProximity     = "readProximitySensor"
	opVisionImage       = "getVisionSensorImage"
	opCallScriptFunc    = "callScriptFunction"
	opIntParam          = "getIntegerParameter"
	opFloatParam        = "getFloatingParameter"
	opStringParam       = "getStringParameter"
	opSetSynchronous    = "setSynchronous"
	opStartSimulation   = "startSimulation"
	opStopSimulation    = "stopSimulation"
	opSimulationRunning = "getSimulationRunning"
	opStep              = "synchronousTrigger"
)

// Parameter payloads.

type nameParams struct {
	Name string `json:"name"`
}

type handleParams struct {
	Handle remoteapi.Handle `json:"handle"`
}

type poseParams struct {
	Handle remoteapi.Handle `json:"handle"`
	Rel    remoteapi.Handle `json:"rel"`
}

type setPoseParams struct {
	Handle remoteapi.Handle `json:"handle"`
	Rel    remoteapi.Handle `json:"rel"`
	Values [3]float64       `json:"values"`
}

type groupDataParams struct {
	Handle remoteapi.Handle `json:"handle"`
	Kind   int              `json:"kind"`
}

type setParentParams struct {
	Handle      remoteapi.Handle `json:"handle"`
	Parent      remoteapi.Handle `json:"parent"`
	KeepInPlace bool             `json:"keepInPlace"`
}

type objectFloatParams struct {
	Handle remoteapi.Handle `json:"handle"`
	Param  int              `json:"param"`
}

type velocityParams struct {
	Handle   remoteapi.Handle `json:"handle"`
	Velocity float64          `json:"velocity"`
}

type imageParams struct {
	Handle    remoteapi.Handle `json:"handle"`
	Grayscale bool             `json:"grayscale"`
}

type scriptParams struct {
	Script     int                 `json:"script"`
	ScriptName string              `json:"scriptName"`
	Func       string              `json:"func"`
	Args       remoteapi.ScriptArgs `json:"args"`
}

type paramIDParams struct {
	ID int `json:"id"`
}

type boolParams struct {
	Value bool `json:"value"`
}

// Result payloads.

type handleResult struct {
	Handle remoteapi.Handle `json:"handle"`
}

type valuesResult struct {
	Values [3]float64 `json:"values"`
}

type floatResult struct {
	Value float64 `json:"value"`
}

type intResult struct {
	Value int `json:"value"`
}

type stringResult struct {
	Value string `json:"value"`
}

type boolResult struct {
	Value bool `json:"value"`
}
