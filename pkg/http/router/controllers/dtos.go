package controllers

import (
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine/routing"
	"github.com/lintang-b-s/roadroute/pkg/guidance"
	"github.com/lintang-b-s/roadroute/pkg/http/usecases"
	"github.com/lintang-b-s/roadroute/pkg/util"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	Mode           string  `json:"mode" validate:"omitempty,max=64"`
}

type nodeRouteRequest struct {
	Origin      int64  `json:"origin"`
	Destination int64  `json:"destination"`
	Mode        string `json:"mode" validate:"omitempty,max=64"`
}

type batchRouteRequest struct {
	Queries []nodeRouteRequest `json:"queries" validate:"required,min=1,max=1000,dive"`
}

type hopResponse struct {
	From   int64   `json:"from"`
	To     int64   `json:"to"`
	Key    int     `json:"key"`
	Cost   float64 `json:"cost"`
	Length float64 `json:"length"`
}

type instructionResponse struct {
	Sign        guidance.TurnSign `json:"sign"`
	StreetName  string            `json:"street_name"`
	Description string            `json:"description"`
	Lat         float64           `json:"lat"`
	Lon         float64           `json:"lon"`
	Distance    float64           `json:"distance"`
	TravelTime  float64           `json:"travel_time"`
	Polyline    string            `json:"polyline"`
}

type routeResponse struct {
	Found        bool                  `json:"found"`
	Origin       int64                 `json:"origin"`
	Destination  int64                 `json:"destination"`
	Mode         string                `json:"mode"`
	Cost         *float64              `json:"cost"` // null when unreachable
	Unit         string                `json:"unit"`
	Distance     float64               `json:"distance"`
	Eta          float64               `json:"eta"`
	Nodes        []int64               `json:"nodes"`
	Hops         []hopResponse         `json:"hops"`
	Path         string                `json:"path"`
	Instructions []instructionResponse `json:"instructions"`
	Stats        routing.QueryStats    `json:"stats"`
}

func NewRouteResponse(res *usecases.RouteResult) routeResponse {
	route := res.Route
	resp := routeResponse{
		Found:        route.Found,
		Origin:       int64(res.Origin),
		Destination:  int64(res.Destination),
		Mode:         string(route.Model),
		Unit:         route.Model.Unit(),
		Distance:     util.RoundFloat(res.Distance, 2),
		Eta:          util.RoundFloat(res.Eta, 2),
		Nodes:        make([]int64, len(route.Nodes)),
		Hops:         make([]hopResponse, len(route.Hops)),
		Path:         res.Polyline,
		Instructions: make([]instructionResponse, len(res.Instructions)),
		Stats:        route.Stats,
	}
	if route.Found {
		cost := route.Cost
		resp.Cost = &cost
	}
	for i, id := range route.Nodes {
		resp.Nodes[i] = int64(id)
	}
	for i, h := range route.Hops {
		resp.Hops[i] = hopResponse{From: int64(h.From), To: int64(h.To), Key: h.Key, Cost: h.Cost, Length: h.Length}
	}
	for i, ins := range res.Instructions {
		resp.Instructions[i] = instructionResponse{
			Sign:        ins.Sign,
			StreetName:  ins.StreetName,
			Description: ins.Description,
			Lat:         ins.Point.Lat,
			Lon:         ins.Point.Lon,
			Distance:    util.RoundFloat(ins.Distance, 2),
			TravelTime:  util.RoundFloat(ins.TravelTime, 2),
			Polyline:    ins.Polyline,
		}
	}
	return resp
}

type batchItemResponse struct {
	Route *routeResponse `json:"route,omitempty"`
	Error string         `json:"error,omitempty"`
}

func NewBatchResponse(results []usecases.BatchRouteResult) []batchItemResponse {
	resp := make([]batchItemResponse, len(results))
	for i, res := range results {
		if res.Err != nil {
			resp[i].Error = res.Err.Error()
			continue
		}
		route := NewRouteResponse(res.Result)
		resp[i].Route = &route
	}
	return resp
}

type roadClassificationResponse struct {
	Classification string  `json:"classification"`
	Edges          int     `json:"edges"`
	Speed          float64 `json:"speed"`
}

func NewRoadClassificationsResponse(rc []usecases.RoadClassification) []roadClassificationResponse {
	resp := make([]roadClassificationResponse, len(rc))
	for i, c := range rc {
		resp[i] = roadClassificationResponse{Classification: c.Classification, Edges: c.Edges, Speed: c.Speed}
	}
	return resp
}

func (r nodeRouteRequest) toBatchQuery() usecases.BatchQuery {
	return usecases.BatchQuery{
		Origin:      datastructure.NodeID(r.Origin),
		Destination: datastructure.NodeID(r.Destination),
		Mode:        r.Mode,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
