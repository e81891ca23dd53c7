// Package command recognizes a decoded RESP Array as one of the server's
// five commands, validates its argument shape, and executes it against the
// backend store. Dispatch is a switch on a closed Name set — never
// reflection.
package command

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/lukluk/rendang/internal/resp"
)

// Name identifies which command a Command carries. The set is closed.
type Name int

const (
	Get Name = iota
	Set
	HGet
	HSet
	HGetAll
	Unrecognized
)

func (n Name) String() string {
	switch n {
	case Get:
		return "get"
	case Set:
		return "set"
	case HGet:
		return "hget"
	case HSet:
		return "hset"
	case HGetAll:
		return "hgetall"
	case Unrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Command is the result of parsing a request Array. Only the fields
// relevant to Name are meaningful.
type Command struct {
	Name    Name
	RawName string // original command text, populated only for Unrecognized
	Key     string
	Field   string
	Value   resp.Frame
	Sort    bool // HGETALL only: emit fields in ascending order
}

// RespOK is the shared OK reply, allocated once and returned by every
// command that answers OK.
var RespOK = resp.SimpleString("OK")

// Parse turns a decoded frame into a Command. The frame must be an Array
// whose first element is a BulkString naming the command; any other shape
// is a CommandError. An unrecognized command name is not an error — it
// parses successfully into a Command{Name: Unrecognized} so the pipeline
// can still produce a reply.
func Parse(frame resp.Frame) (Command, error) {
	cmd, err := parse(frame)
	if err != nil {
		return Command{}, errors.WithStack(err)
	}
	return cmd, nil
}

func parse(frame resp.Frame) (Command, error) {
	if frame.Kind != resp.KindArray {
		return Command{}, newInvalidCommand("command must be an Array")
	}
	args := frame.Array
	if len(args) == 0 || args[0].Kind != resp.KindBulkString {
		return Command{}, newInvalidCommand("command must have a BulkString as its first element")
	}

	raw := string(args[0].Bulk)
	switch strings.ToLower(raw) {
	case "get":
		return parseGet(args)
	case "set":
		return parseSet(args)
	case "hget":
		return parseHGet(args)
	case "hset":
		return parseHSet(args)
	case "hgetall":
		return parseHGetAll(args)
	default:
		return Command{Name: Unrecognized, RawName: raw}, nil
	}
}

func validateArity(args []resp.Frame, name string, argCount int) error {
	if len(args) != argCount+1 {
		return newInvalidArgument("%s command must have exactly %d arguments", name, argCount)
	}
	return nil
}

func textArg(f resp.Frame, label string) (string, error) {
	if f.Kind != resp.KindBulkString {
		return "", newInvalidArgument("%s must be a BulkString", label)
	}
	if !utf8.Valid(f.Bulk) {
		return "", newInvalidArgument("%s is not valid UTF-8", label)
	}
	return string(f.Bulk), nil
}

func parseGet(args []resp.Frame) (Command, error) {
	if err := validateArity(args, "get", 1); err != nil {
		return Command{}, err
	}
	key, err := textArg(args[1], "key")
	if err != nil {
		return Command{}, err
	}
	return Command{Name: Get, Key: key}, nil
}

func parseSet(args []resp.Frame) (Command, error) {
	if err := validateArity(args, "set", 2); err != nil {
		return Command{}, err
	}
	key, err := textArg(args[1], "key")
	if err != nil {
		return Command{}, err
	}
	return Command{Name: Set, Key: key, Value: args[2]}, nil
}

func parseHGet(args []resp.Frame) (Command, error) {
	if err := validateArity(args, "hget", 2); err != nil {
		return Command{}, err
	}
	key, err := textArg(args[1], "key")
	if err != nil {
		return Command{}, err
	}
	field, err := textArg(args[2], "field")
	if err != nil {
		return Command{}, err
	}
	return Command{Name: HGet, Key: key, Field: field}, nil
}

func parseHSet(args []resp.Frame) (Command, error) {
	if err := validateArity(args, "hset", 3); err != nil {
		return Command{}, err
	}
	key, err := textArg(args[1], "key")
	if err != nil {
		return Command{}, err
	}
	field, err := textArg(args[2], "field")
	if err != nil {
		return Command{}, err
	}
	return Command{Name: HSet, Key: key, Field: field, Value: args[3]}, nil
}

func parseHGetAll(args []resp.Frame) (Command, error) {
	if err := validateArity(args, "hgetall", 1); err != nil {
		return Command{}, err
	}
	key, err := textArg(args[1], "key")
	if err != nil {
		return Command{}, err
	}
	return Command{Name: HGetAll, Key: key, Sort: false}, nil
}
