package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/roadroute/pkg/costfunction"
	"github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/engine"
	"go.uber.org/zap"
)

const (
	actionSetOrigin      = "set_origin"
	actionSetDestination = "set_destination"
	actionSetMode        = "set_mode"
	actionRoute          = "route"
	actionReset          = "reset"
)

type sessionRequest struct {
	Action string `json:"action" validate:"required,oneof=set_origin set_destination set_mode route reset"`
	NodeID *int64 `json:"node_id" validate:"required_if=Action set_origin,required_if=Action set_destination"`
	Mode   string `json:"mode" validate:"omitempty,max=64"`
}

type sessionResponse struct {
	Action string            `json:"action"`
	Data   any               `json:"data,omitempty"`
	Error  map[string]string `json:"error,omitempty"`
}

// SessionConn serves one websocket connection. Every connection owns its own engine.Session.
type SessionConn struct {
	io      sync.Mutex
	conn    io.ReadWriteCloser
	session *engine.Session
	service RoutingService
	log     *zap.Logger
}

func NewSessionConn(conn io.ReadWriteCloser, service RoutingService, log *zap.Logger) *SessionConn {
	return &SessionConn{
		conn:    conn,
		session: service.NewSession(),
		service: service,
		log:     log,
	}
}

// Serve handles requests until the client closes the connection or ctx is done. Cancelling ctx closes
// the connection, which unblocks a pending read.
func (s *SessionConn) Serve(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-done:
		}
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg, op, err := wsutil.ReadClientData(s.conn)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var closed wsutil.ClosedError
			if errors.As(err, &closed) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if op != ws.OpText {
			continue
		}

		if err := s.write(s.handle(ctx, msg)); err != nil {
			return err
		}
	}
}

func (s *SessionConn) handle(ctx context.Context, msg []byte) sessionResponse {
	var req sessionRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return errorMessage("", http.StatusBadRequest, err)
	}
	if err := validateRequest(req); err != nil {
		return errorMessage(req.Action, http.StatusBadRequest, err)
	}

	resp := sessionResponse{Action: req.Action}
	switch req.Action {
	case actionSetOrigin:
		if err := s.session.SetOrigin(datastructure.NodeID(*req.NodeID)); err != nil {
			return errorMessage(req.Action, statusOf(err), err)
		}
		resp.Data = map[string]int64{"origin": *req.NodeID}
	case actionSetDestination:
		if err := s.session.SetDestination(datastructure.NodeID(*req.NodeID)); err != nil {
			return errorMessage(req.Action, statusOf(err), err)
		}
		resp.Data = map[string]int64{"destination": *req.NodeID}
	case actionSetMode:
		s.session.SetModel(costfunction.ParseCostModel(req.Mode))
		resp.Data = map[string]string{"mode": string(s.session.GetModel())}
	case actionRoute:
		if req.Mode != "" {
			s.session.SetModel(costfunction.ParseCostModel(req.Mode))
		}
		route, err := s.session.Route(ctx)
		if errors.Is(err, engine.ErrIncompleteSession) {
			return errorMessage(req.Action, http.StatusBadRequest, err)
		}
		if err != nil {
			s.log.Error("session route failed", zap.Error(err))
			return errorMessage(req.Action, statusOf(err), err)
		}
		origin, _ := s.session.GetOrigin()
		destination, _ := s.session.GetDestination()
		resp.Data = NewRouteResponse(s.service.Describe(origin, destination, route))
	case actionReset:
		s.session.Reset()
		resp.Data = map[string]bool{"reset": true}
	}
	return resp
}

func errorMessage(action string, status int, err error) sessionResponse {
	return sessionResponse{
		Action: action,
		Error: map[string]string{
			"code":    http.StatusText(status),
			"message": err.Error(),
		},
	}
}

func (s *SessionConn) write(resp sessionResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	s.io.Lock()
	defer s.io.Unlock()
	return wsutil.WriteServerMessage(s.conn, ws.OpText, data)
}
