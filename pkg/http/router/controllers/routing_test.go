package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	helper "github.com/lintang-b-s/roadroute/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/roadroute/pkg/http/usecases"
	"github.com/lintang-b-s/roadroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errNodeMissing = errors.New("node missing")

type fakeRoutingService struct {
	lastMode string
}

func foundResult(origin, destination datastructure.NodeID, model costfunction.CostModel) *usecases.RouteResult {
	return &usecases.RouteResult{
		Route: &routing.Route{
			Nodes: []datastructure.NodeID{origin, destination},
			Hops:  []routing.Hop{{From: origin, To: destination, Cost: 500, Length: 500}},
			Cost:  500,
			Found: true,
			Model: model,
		},
		Origin:      origin,
		Destination: destination,
		Distance:    500,
		Eta:         36,
		Polyline:    "_p~iF~ps|U",
	}
}

func (f *fakeRoutingService) ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	mode string) (*usecases.RouteResult, error) {
	f.lastMode = mode
	if origLat == 0 && origLon == 0 {
		return nil, util.WrapErrorf(errNodeMissing, util.ErrNotFound, "no road near %f,%f", origLat, origLon)
	}
	return foundResult(1, 2, costfunction.ParseCostModel(mode)), nil
}

func (f *fakeRoutingService) ShortestPathByNode(ctx context.Context, origin, destination datastructure.NodeID,
	mode string) (*usecases.RouteResult, error) {
	f.lastMode = mode
	switch destination {
	case 99:
		return nil, util.WrapErrorf(errNodeMissing, util.ErrNotFound, "node %d not found", destination)
	case 5:
		return &usecases.RouteResult{
			Route:       &routing.Route{Nodes: []datastructure.NodeID{destination}, Cost: math.Inf(1)},
			Origin:      origin,
			Destination: destination,
		}, nil
	case 13:
		return nil, errors.New("disk on fire")
	}
	return foundResult(origin, destination, costfunction.ParseCostModel(mode)), nil
}

func (f *fakeRoutingService) ShortestPathBatch(ctx context.Context, queries []usecases.BatchQuery) []usecases.BatchRouteResult {
	out := make([]usecases.BatchRouteResult, len(queries))
	for i, q := range queries {
		out[i].Result, out[i].Err = f.ShortestPathByNode(ctx, q.Origin, q.Destination, q.Mode)
	}
	return out
}

func (f *fakeRoutingService) RoadClassifications() []usecases.RoadClassification {
	return []usecases.RoadClassification{{Classification: "primary", Edges: 10, Speed: 70}}
}

func (f *fakeRoutingService) Describe(origin, destination datastructure.NodeID, route *routing.Route) *usecases.RouteResult {
	return &usecases.RouteResult{Route: route, Origin: origin, Destination: destination}
}

func (f *fakeRoutingService) NewSession() *engine.Session {
	return nil
}

func newTestRouter(svc RoutingService) *httprouter.Router {
	router := httprouter.New()
	New(svc, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

type response struct {
	Data  json.RawMessage   `json:"data"`
	Error map[string]string `json:"error"`
}

func serve(t *testing.T, router http.Handler, method, target, body string) (int, response) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestComputeRoutes(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	testCases := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"ok", "/api/computeRoutes?origin_lat=-7.76&origin_lon=110.37&destination_lat=-7.77&destination_lon=110.38&mode=time", http.StatusOK},
		{"missing origin", "/api/computeRoutes?destination_lat=-7.77&destination_lon=110.38", http.StatusBadRequest},
		{"latitude out of range", "/api/computeRoutes?origin_lat=95&origin_lon=110.37&destination_lat=-7.77&destination_lon=110.38", http.StatusBadRequest},
		{"no road nearby", "/api/computeRoutes?origin_lat=0&origin_lon=0&destination_lat=-7.77&destination_lon=110.38", http.StatusNotFound},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := serve(t, router, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, http.StatusText(tt.wantStatus), resp.Error["code"])
				assert.NotEmpty(t, resp.Error["message"])
				return
			}

			var route routeResponse
			require.NoError(t, json.Unmarshal(resp.Data, &route))
			assert.True(t, route.Found)
			assert.Equal(t, "time", route.Mode)
			assert.Equal(t, "second", route.Unit)
			require.NotNil(t, route.Cost)
			assert.Equal(t, 500.0, *route.Cost)
			assert.Equal(t, []int64{1, 2}, route.Nodes)
		})
	}
}

func TestComputeRoutesByNode(t *testing.T) {
	svc := &fakeRoutingService{}
	router := newTestRouter(svc)

	testCases := []struct {
		name       string
		target     string
		wantStatus int
		wantFound  bool
	}{
		{"found", "/api/computeRoutesByNode?origin=1&destination=4", http.StatusOK, true},
		{"unreachable", "/api/computeRoutesByNode?origin=1&destination=5", http.StatusOK, false},
		{"unknown node", "/api/computeRoutesByNode?origin=1&destination=99", http.StatusNotFound, false},
		{"bad node id", "/api/computeRoutesByNode?origin=abc&destination=4", http.StatusBadRequest, false},
		{"internal error", "/api/computeRoutesByNode?origin=1&destination=13", http.StatusInternalServerError, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := serve(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, status)
			if status != http.StatusOK {
				if status == http.StatusInternalServerError {
					assert.Equal(t, util.MessageInternalServerError, resp.Error["message"])
				}
				return
			}

			var route routeResponse
			require.NoError(t, json.Unmarshal(resp.Data, &route))
			assert.Equal(t, tt.wantFound, route.Found)
			if !tt.wantFound {
				assert.Nil(t, route.Cost)
				assert.Equal(t, []int64{5}, route.Nodes)
				assert.Empty(t, route.Hops)
			}
		})
	}
}

func TestComputeRoutesBatch(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	status, resp := serve(t, router, http.MethodPost, "/api/computeRoutesBatch",
		`{"queries":[{"origin":1,"destination":2,"mode":"distance"},{"origin":1,"destination":99}]}`)
	require.Equal(t, http.StatusOK, status)

	var items []batchItemResponse
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Route)
	assert.Equal(t, "meter", items[0].Route.Unit)
	assert.Empty(t, items[0].Error)
	assert.Nil(t, items[1].Route)
	assert.Contains(t, items[1].Error, "not found")

	status, _ = serve(t, router, http.MethodPost, "/api/computeRoutesBatch", `{"queries":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = serve(t, router, http.MethodPost, "/api/computeRoutesBatch", `{"queries":`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRoadClassifications(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	status, resp := serve(t, router, http.MethodGet, "/api/roadClassifications", "")
	require.Equal(t, http.StatusOK, status)

	var classes []roadClassificationResponse
	require.NoError(t, json.Unmarshal(resp.Data, &classes))
	assert.Equal(t, []roadClassificationResponse{{Classification: "primary", Edges: 10, Speed: 70}}, classes)
}
