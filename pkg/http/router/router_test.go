package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	"github.com/lintang-b-s/roadroute/pkg/http/usecases"
	"github.com/lintang-b-s/roadroute/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func f64(x float64) *float64 {
	return &x
}

func newTestAPI(t *testing.T) *API {
	g := da.NewGraph()
	coords := [][2]float64{{-7.76, 110.37}, {-7.761, 110.371}, {-7.762, 110.372}, {-7.763, 110.373}}
	for i, c := range coords {
		_, err := g.AddNode(da.NodeID(i+1), c[0], c[1])
		require.NoError(t, err)
	}
	edges := []struct {
		from, to da.NodeID
		dist     float64
		class    string
	}{
		{1, 2, 400, "residential"},
		{2, 4, 400, "residential"},
		{1, 3, 600, "primary"},
		{3, 4, 600, "primary"},
	}
	for _, e := range edges {
		_, err := g.AddEdge(e.from, e.to, da.EdgeInput{Distance: f64(e.dist), Classification: da.ScalarTag(e.class)})
		require.NoError(t, err)
	}

	eng, err := engine.NewEngine(g, engine.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	rt := spatialindex.NewRtree()
	rt.Build(g, 0.05, zap.NewNop())

	return NewAPI(zap.NewNop(), usecases.NewRoutingService(zap.NewNop(), eng, rt, 0.5))
}

func TestHeartbeatAndJSONEnforcement(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := httptest.NewServer(newTestAPI(t).Handler(ctx, false))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/computeRoutesBatch", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/computeRoutesByNode?origin=1&destination=4&mode=time")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Nodes []int64 `json:"nodes"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []int64{1, 3, 4}, body.Data.Nodes)
}

func TestLimit(t *testing.T) {
	handler := Limit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestRealIP(t *testing.T) {
	var got string
	handler := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7, 10.0.0.1")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.7", got)
}

type sessionMessage struct {
	Action string            `json:"action"`
	Data   json.RawMessage   `json:"data"`
	Error  map[string]string `json:"error"`
}

func TestWebsocketSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := httptest.NewServer(newTestAPI(t).Handler(ctx, false))
	defer srv.Close()

	conn, _, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	require.NoError(t, err)
	defer conn.Close()

	send := func(msg string) sessionMessage {
		require.NoError(t, wsutil.WriteClientMessage(conn, ws.OpText, []byte(msg)))
		data, err := wsutil.ReadServerText(conn)
		require.NoError(t, err)
		var resp sessionMessage
		require.NoError(t, json.Unmarshal(data, &resp))
		return resp
	}

	resp := send(`{"action":"route"}`)
	assert.Equal(t, "Bad Request", resp.Error["code"])

	resp = send(`{"action":"set_origin"}`)
	assert.Equal(t, "Bad Request", resp.Error["code"])

	resp = send(`{"action":"set_origin","node_id":99}`)
	assert.Equal(t, "Not Found", resp.Error["code"])

	resp = send(`{"action":"set_origin","node_id":1}`)
	assert.Empty(t, resp.Error)
	resp = send(`{"action":"set_destination","node_id":4}`)
	assert.Empty(t, resp.Error)

	resp = send(`{"action":"route","mode":"time"}`)
	require.Empty(t, resp.Error)
	var route struct {
		Found bool    `json:"found"`
		Nodes []int64 `json:"nodes"`
		Mode  string  `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &route))
	assert.True(t, route.Found)
	assert.Equal(t, "time", route.Mode)
	assert.Equal(t, []int64{1, 3, 4}, route.Nodes)

	resp = send(`{"action":"reset"}`)
	assert.Empty(t, resp.Error)
	resp = send(`{"action":"route"}`)
	assert.Equal(t, "Bad Request", resp.Error["code"])

	resp = send(`{"action":"fly"}`)
	assert.Equal(t, "Bad Request", resp.Error["code"])
}
