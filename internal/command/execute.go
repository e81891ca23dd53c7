package command

import (
	"fmt"
	"sort"

	"github.com/lukluk/rendang/internal/resp"
	"github.com/lukluk/rendang/internal/store"
)

// Execute runs c against s and returns the single reply frame. It never
// blocks beyond the backend's own shard-lock contention, and never panics
// on a well-formed Command.
func (c Command) Execute(s *store.Store) resp.Frame {
	switch c.Name {
	case Get:
		v, ok := s.Get(c.Key)
		if !ok {
			return resp.Null()
		}
		return v
	case Set:
		s.Set(c.Key, c.Value)
		return RespOK
	case HGet:
		v, ok := s.HGet(c.Key, c.Field)
		if !ok {
			return resp.Null()
		}
		return v
	case HSet:
		s.HSet(c.Key, c.Field, c.Value)
		return RespOK
	case HGetAll:
		entries := s.HGetAll(c.Key)
		if c.Sort {
			sort.Slice(entries, func(i, j int) bool { return entries[i].Field < entries[j].Field })
		}
		items := make([]resp.Frame, 0, len(entries)*2)
		for _, e := range entries {
			items = append(items, resp.BulkStringFromString(e.Field), e.Value)
		}
		return resp.ArrayOf(items...)
	case Unrecognized:
		return resp.SimpleError(fmt.Sprintf("ERR unknown command '%s'", c.RawName))
	default:
		return resp.SimpleError("ERR internal command dispatch error")
	}
}
