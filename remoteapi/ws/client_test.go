package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse/remoteapi"
)

// respond describes how the test server answers one request.
type respond func(req request) response

// newTestServer runs a WebSocket endpoint answering each request frame
// with the scripted responder.
func newTestServer(t *testing.T, handle respond) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req request
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if err := conn.WriteJSON(handle(req)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(s.Close)
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

// ok builds a well-formed response for a request.
func ok(req request, payload any) response {
	data, _ := json.Marshal(payload)
	return response{
		ID:      req.ID,
		Status:  int(remoteapi.StatusOK),
		Payload: data,
		Sum:     xxhash.Sum64(data),
	}
}

func dial(t *testing.T, url string) *Client {
	t.Helper()
	client, err := Dial(context.Background(), url, DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestObjectHandle(t *testing.T) {
	url := newTestServer(t, func(req request) response {
		if req.Op != opObjectHandle {
			return response{ID: req.ID, Status: int(remoteapi.StatusRemoteError)}
		}
		var params nameParams
		if err := json.Unmarshal(req.Params, &params); err != nil || params.Name != "robot" {
			return response{ID: req.ID, Status: int(remoteapi.StatusRemoteError)}
		}
		return ok(req, handleResult{Handle: 42})
	})
	client := dial(t, url)

	h, st := client.ObjectHandle("robot")
	assert.Equal(t, remoteapi.StatusOK, st)
	assert.Equal(t, remoteapi.Handle(42), h)

	_, st = client.ObjectHandle("other")
	assert.Equal(t, remoteapi.StatusRemoteError, st)
}

func TestSetAndGetPosition(t *testing.T) {
	var stored [3]float64
	url := newTestServer(t, func(req request) response {
		switch req.Op {
		case opSetObjectPosition:
			var params setPoseParams
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return response{ID: req.ID, Status: int(remoteapi.StatusRemoteError)}
			}
			stored = params.Values
			return response{ID: req.ID, Status: int(remoteapi.StatusOK)}
		case opObjectPosition:
			return ok(req, valuesResult{Values: stored})
		default:
			return response{ID: req.ID, Status: int(remoteapi.StatusRemoteError)}
		}
	})
	client := dial(t, url)

	st := client.SetObjectPosition(7, remoteapi.NoHandle, [3]float64{1, 2, 3})
	require.Equal(t, remoteapi.StatusOK, st)

	pos, st := client.ObjectPosition(7, remoteapi.NoHandle)
	require.Equal(t, remoteapi.StatusOK, st)
	assert.Equal(t, [3]float64{1, 2, 3}, pos)
}

func TestServerStatusPassthrough(t *testing.T) {
	url := newTestServer(t, func(req request) response {
		return response{ID: req.ID, Status: int(remoteapi.StatusNoValue)}
	})
	client := dial(t, url)

	_, st := client.ReadProximitySensor(1)
	assert.Equal(t, remoteapi.StatusNoValue, st)
}

func TestChecksumMismatch(t *testing.T) {
	url := newTestServer(t, func(req request) response {
		resp := ok(req, handleResult{Handle: 42})
		resp.Sum++
		return resp
	})
	client := dial(t, url)

	_, st := client.ObjectHandle("robot")
	assert.Equal(t, remoteapi.StatusLocalError, st)
}

func TestResponseIDMismatch(t *testing.T) {
	url := newTestServer(t, func(req request) response {
		resp := ok(req, handleResult{Handle: 42})
		resp.ID = "stale"
		return resp
	})
	client := dial(t, url)

	_, st := client.ObjectHandle("robot")
	assert.Equal(t, remoteapi.StatusLocalError, st)
}

func TestCallAfterClose(t *testing.T) {
	url := newTestServer(t, func(req request) response {
		return ok(req, handleResult{Handle: 42})
	})
	client := dial(t, url)
	require.NoError(t, client.Close())

	_, st := client.ObjectHandle("robot")
	assert.Equal(t, remoteapi.StatusLocalError, st)

	// closing twice is a no-op
	assert.NoError(t, client.Close())
}

func TestVisionSensorImageRoundTrip(t *testing.T) {
	url := newTestServer(t, func(req request) response {
		var params imageParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return response{ID: req.ID, Status: int(remoteapi.StatusRemoteError)}
		}
		return ok(req, remoteapi.ImageData{
			Width:     1,
			Height:    1,
			Grayscale: params.Grayscale,
			Pixels:    []int8{-1, 0, 127},
		})
	})
	client := dial(t, url)

	img, st := client.VisionSensorImage(3, false)
	require.Equal(t, remoteapi.StatusOK, st)
	assert.Equal(t, []int8{-1, 0, 127}, img.Pixels)
	assert.False(t, img.Grayscale)
}
