// Package ws implements the remote API client over a WebSocket
// connection carrying JSON request/response frames.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/simverse/simverse/internal/observability/log"
	"github.com/simverse/simverse/remoteapi"
)

var _ remoteapi.Client = (*Client)(nil)

// Config holds transport settings.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       log.Log
}

// DefaultConfig returns the default transport settings.
func DefaultConfig() Config {
	return Config{
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Client is a blocking WebSocket connection to the remote API server.
// A single request is in flight at a time; the write mutex serializes
// callers onto the connection.
type Client struct {
	conn   *websocket.Conn
	config Config
	logger log.Log

	mu     sync.Mutex
	closed int32
}

// Dial connects to the remote API server at the given WebSocket URL.
func Dial(ctx context.Context, url string, config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.With(log.String("component", "remoteapi.ws"))

	dialer := websocket.Dialer{HandshakeTimeout: config.DialTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}

	logger.Info("Connected to remote API server", log.String("url", url))

	return &Client{
		conn:   conn,
		config: config,
		logger: logger,
	}, nil
}

// Close sends a close frame and tears down the connection.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil // already closed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(c.config.WriteTimeout)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

	err := c.conn.Close()
	c.logger.Info("Connection closed")
	return errors.Wrap(err, "close connection")
}

// call issues one blocking request and decodes the response payload
// into out (when non-nil). Transport faults are logged and reported as
// StatusLocalError; the server's own verdict passes through untouched.
func (c *Client) call(op string, params, out any) remoteapi.Status {
	if atomic.LoadInt32(&c.closed) == 1 {
		return remoteapi.StatusLocalError
	}

	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			c.logger.Error("Failed to encode request params",
				log.String("op", op), log.Error(err))
			return remoteapi.StatusLocalError
		}
		raw = data
	}

	req := request{ID: uuid.NewString(), Op: op, Params: raw}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.WriteTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	}
	if err := c.conn.WriteJSON(req); err != nil {
		c.logger.Error("Failed to write request", log.String("op", op), log.Error(err))
		return remoteapi.StatusLocalError
	}

	if c.config.ReadTimeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}
	var resp response
	if err := c.conn.ReadJSON(&resp); err != nil {
		c.logger.Error("Failed to read response", log.String("op", op), log.Error(err))
		return remoteapi.StatusLocalError
	}

	// One request in flight: an id mismatch means the stream is out of
	// step and nothing further on it can be trusted.
	if resp.ID != req.ID {
		c.logger.Error("Response id mismatch",
			log.String("op", op),
			log.String("want", req.ID),
			log.String("got", resp.ID))
		return remoteapi.StatusLocalError
	}

	if len(resp.Payload) > 0 && resp.Sum != xxhash.Sum64(resp.Payload) {
		c.logger.Error("Payload checksum mismatch", log.String("op", op))
		return remoteapi.StatusLocalError
	}

	status := remoteapi.Status(resp.Status)
	if out != nil && len(resp.Payload) > 0 {
		if err := json.Unmarshal(resp.Payload, out); err != nil {
			c.logger.Error("Failed to decode response payload",
				log.String("op", op), log.Error(err))
			return remoteapi.StatusLocalError
		}
	}

	c.logger.Debug("Remote call completed",
		log.String("op", op),
		log.String("status", status.String()))

	return status
}

func (c *Client) ObjectHandle(name string) (remoteapi.Handle, remoteapi.Status) {
	var res handleResult
	st := c.call(opObjectHandle, nameParams{Name: name}, &res)
	return res.Handle, st
}

func (c *Client) CollectionHandle(name string) (remoteapi.Handle, remoteapi.Status) {
	var res handleResult
	st := c.call(opCollectionHandle, nameParams{Name: name}, &res)
	return res.Handle, st
}

func (c *Client) ObjectGroupData(h remoteapi.Handle, kind remoteapi.GroupDataKind) (remoteapi.GroupData, remoteapi.Status) {
	var res remoteapi.GroupData
	st := c.call(opObjectGroupData, groupDataParams{Handle: h, Kind: int(kind)}, &res)
	return res, st
}

func (c *Client) ObjectPosition(h, rel remoteapi.Handle) ([3]float64, remoteapi.Status) {
	var res valuesResult
	st := c.call(opObjectPosition, poseParams{Handle: h, Rel: rel}, &res)
	return res.Values, st
}

func (c *Client) SetObjectPosition(h, rel remoteapi.Handle, pos [3]float64) remoteapi.Status {
	return c.call(opSetObjectPosition, setPoseParams{Handle: h, Rel: rel, Values: pos}, nil)
}

func (c *Client) ObjectOrientation(h, rel remoteapi.Handle) ([3]float64, remoteapi.Status) {
	var res valuesResult
	st := c.call(opObjectOrientation, poseParams{Handle: h, Rel: rel}, &res)
	return res.Values, st
}

func (c *Client) SetObjectOrientation(h, rel remoteapi.Handle, euler [3]float64) remoteapi.Status {
	return c.call(opSetObjectOrient, setPoseParams{Handle: h, Rel: rel, Values: euler}, nil)
}

func (c *Client) ObjectParent(h remoteapi.Handle) (remoteapi.Handle, remoteapi.Status) {
	var res handleResult
	st := c.call(opObjectParent, handleParams{Handle: h}, &res)
	return res.Handle, st
}

func (c *Client) SetObjectParent(h, parent remoteapi.Handle, keepInPlace bool) remoteapi.Status {
	return c.call(opSetObjectParent, setParentParams{
		Handle:      h,
		Parent:      parent,
		KeepInPlace: keepInPlace,
	}, nil)
}

func (c *Client) ObjectFloatParam(h remoteapi.Handle, param remoteapi.ObjectFloatParam) (float64, remoteapi.Status) {
	var res floatResult
	st := c.call(opObjectFloatParam, objectFloatParams{Handle: h, Param: int(param)}, &res)
	return res.Value, st
}

func (c *Client) RemoveObject(h remoteapi.Handle) remoteapi.Status {
	return c.call(opRemoveObject, handleParams{Handle: h}, nil)
}

func (c *Client) SetJointTargetVelocity(h remoteapi.Handle, velocity float64) remoteapi.Status {
	return c.call(opSetJointVelocity, velocityParams{Handle: h, Velocity: velocity}, nil)
}

func (c *Client) ReadProximitySensor(h remoteapi.Handle) (remoteapi.ProximityReading, remoteapi.Status) {
	var res remoteapi.ProximityReading
	st := c.call(opReadProximity, handleParams{Handle: h}, &res)
	return res, st
}

func (c *Client) VisionSensorImage(h remoteapi.Handle, grayscale bool) (remoteapi.ImageData, remoteapi.Status) {
	var res remoteapi.ImageData
	st := c.call(opVisionImage, imageParams{Handle: h, Grayscale: grayscale}, &res)
	return res, st
}

func (c *Client) CallScriptFunc(script remoteapi.ScriptType, scriptName, fn string, args remoteapi.ScriptArgs) (remoteapi.ScriptResult, remoteapi.Status) {
	var res remoteapi.ScriptResult
	st := c.call(opCallScriptFunc, scriptParams{
		Script:     int(script),
		ScriptName: scriptName,
		Func:       fn,
		Args:       args,
	}, &res)
	return res, st
}

func (c *Client) IntParam(id remoteapi.IntParam) (int, remoteapi.Status) {
	var res intResult
	st := c.call(opIntParam, paramIDParams{ID: int(id)}, &res)
	return res.Value, st
}

func (c *Client) FloatParam(id remoteapi.FloatParam) (float64, remoteapi.Status) {
	var res floatResult
	st := c.call(opFloatParam, paramIDParams{ID: int(id)}, &res)
	return res.Value, st
}

func (c *Client) StringParam(id remoteapi.StringParam) (string, remoteapi.Status) {
	var res stringResult
	st := c.call(opStringParam, paramIDParams{ID: int(id)}, &res)
	return res.Value, st
}

func (c *Client) SetSynchronous(enable bool) remoteapi.Status {
	return c.call(opSetSynchronous, boolParams{Value: enable}, nil)
}

func (c *Client) StartSimulation() remoteapi.Status {
	return c.call(opStartSimulation, nil, nil)
}

func (c *Client) StopSimulation() remoteapi.Status {
	return c.call(opStopSimulation, nil, nil)
}

func (c *Client) SimulationRunning() (bool, remoteapi.Status) {
	var res boolResult
	st := c.call(opSimulationRunning, nil, &res)
	return res.Value, st
}

func (c *Client) Step() remoteapi.Status {
	return c.call(opStep, nil, nil)
}
