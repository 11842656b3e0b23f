package router

import (
	"context"
	"net"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/roadroute/pkg/http/router/controllers"
	"go.uber.org/zap"
)

// sessionHandler upgrades the request to a websocket and serves an interactive routing session on it.
// Each connection gets its own goroutine and its own engine session.
func (api *API) sessionHandler(ctx context.Context) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, _, hs, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			api.log.Info("upgrade error", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
			return
		}

		api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
			zap.String("protocol", hs.Protocol))

		go func() {
			defer conn.Close()
			sc := controllers.NewSessionConn(conn, api.routingService, api.log)
			if err := sc.Serve(ctx); err != nil && ctx.Err() == nil {
				api.log.Error("websocket session closed with error", zap.Error(err),
					zap.String("connection", nameConn(conn)))
				return
			}
			api.log.Info("websocket session closed", zap.String("connection", nameConn(conn)))
		}()
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
