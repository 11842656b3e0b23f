package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	helper "github.com/lintang-b-s/roadroute/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/roadroute/pkg/http/usecases"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/computeRoutesByNode", api.shortestPathByNode)
	group.POST("/computeRoutesBatch", api.shortestPathBatch)
	group.GET("/roadClassifications", api.roadClassifications)
}

// shortestPath
//
//	@Summary		route between two coordinates, each snapped to the nearest road node
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			mode			query	string	false	"cost model: distance (default), time or an edge attribute name"
//	@Produce		application/json
//	@Router			/computeRoutes [get]
//	@Success		200	{object}	routeResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}
	request.Mode = query.Get("mode")

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ShortestPath(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, request.Mode)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// shortestPathByNode
//
//	@Summary		route between two graph node ids
//	@Tags			routing
//	@Param			origin		query	int		true	"origin node id"
//	@Param			destination	query	int		true	"destination node id"
//	@Param			mode		query	string	false	"cost model"
//	@Produce		application/json
//	@Router			/computeRoutesByNode [get]
//	@Success		200	{object}	routeResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
func (api *routingAPI) shortestPathByNode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nodeRouteRequest
		err     error
	)

	query := r.URL.Query()

	request.Origin, err = strconv.ParseInt(query.Get("origin"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin is required and must be a valid node id"))
		return
	}
	request.Destination, err = strconv.ParseInt(query.Get("destination"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination is required and must be a valid node id"))
		return
	}
	request.Mode = query.Get("mode")

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ShortestPathByNode(r.Context(), datastructure.NodeID(request.Origin),
		datastructure.NodeID(request.Destination), request.Mode)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(res)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// shortestPathBatch
//
//	@Summary		independent node id routes computed in parallel
//	@Tags			routing
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body	batchRouteRequest	true	"queries"
//	@Router			/computeRoutesBatch [post]
//	@Success		200	{object}	[]batchItemResponse
//	@Failure		400	{object}	errorResponse
func (api *routingAPI) shortestPathBatch(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	queries := make([]usecases.BatchQuery, len(request.Queries))
	for i, q := range request.Queries {
		queries[i] = q.toBatchQuery()
	}

	results := api.routingService.ShortestPathBatch(r.Context(), queries)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBatchResponse(results)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// roadClassifications
//
//	@Summary		road classifications of the loaded graph with their assigned speed (km/h)
//	@Tags			routing
//	@Produce		application/json
//	@Router			/roadClassifications [get]
//	@Success		200	{object}	[]roadClassificationResponse
func (api *routingAPI) roadClassifications(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	resp := NewRoadClassificationsResponse(api.routingService.RoadClassifications())
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
