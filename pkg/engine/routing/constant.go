package routing

import (
	"errors"

	da "github.com/lintang-b-s/roadroute/pkg/datastructure"
	"github.com/lintang-b-s/roadroute/pkg/util"
)

var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrSearchAborted = errors.New("shortest path search aborted")
	ErrInvalidWeight = errors.New("cost function returned a negative or NaN weight")
)

const (
	// ctx.Err() is checked once every this many frontier pops.
	CONTEXT_CHECK_INTERVAL = 256
)

// NodeNotFoundError names the missing node and carries util.ErrNotFound as its code.
func NodeNotFoundError(id da.NodeID) error {
	return util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound, "node %d not found", id)
}
