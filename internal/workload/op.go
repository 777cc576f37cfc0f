// Package workload produces and executes streams of cache operations: a
// synthetic generator, a line-based trace format and sequential/concurrent
// runners.
package workload

import (
	"fmt"
	"io"
	"strings"

	"gocache/internal/cache"
)

// Kind is the operation verb.
type Kind uint8

const (
	OpGet Kind = iota
	OpPut
	OpRemove
	OpClear
)

var kindNames = [...]string{
	OpGet:    "GET",
	OpPut:    "PUT",
	OpRemove: "DEL",
	OpClear:  "CLEAR",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Op is one cache operation. Value is only meaningful for OpPut.
type Op struct {
	Kind  Kind
	Key   string
	Value string
}

// Target is the cache surface the runners drive. *cache.Cache[string, string]
// and *cache.Sharded[string, string] both satisfy it.
type Target interface {
	Get(key string) (string, bool, error)
	Put(key, value string) (string, bool, error)
	Remove(key string) (string, bool, error)
	Clear() error
}

// Apply executes op against t. hit reports whether a GET found its key.
func Apply(t Target, op Op) (hit bool, err error) {
	switch op.Kind {
	case OpGet:
		_, hit, err = t.Get(op.Key)
	case OpPut:
		_, _, err = t.Put(op.Key, op.Value)
	case OpRemove:
		_, _, err = t.Remove(op.Key)
	case OpClear:
		err = t.Clear()
	default:
		err = &cache.SerializationError{Detail: fmt.Sprintf("unknown op kind %d", op.Kind)}
	}
	return hit, err
}

// Encode renders op as one trace line without the trailing newline.
func Encode(op Op) (string, error) {
	switch op.Kind {
	case OpClear:
		return "CLEAR", nil
	case OpGet, OpPut, OpRemove:
	default:
		return "", &cache.SerializationError{Detail: fmt.Sprintf("unknown op kind %d", op.Kind)}
	}

	if op.Key == "" || strings.ContainsAny(op.Key, " \t\r\n") {
		return "", &cache.SerializationError{Detail: fmt.Sprintf("key %q is empty or contains whitespace", op.Key)}
	}
	if op.Kind != OpPut {
		return op.Kind.String() + " " + op.Key, nil
	}
	if strings.ContainsAny(op.Value, "\r\n") {
		return "", &cache.SerializationError{Detail: fmt.Sprintf("value for %q contains a line break", op.Key)}
	}
	return "PUT " + op.Key + " " + op.Value, nil
}

// Decode parses one trace line. Blank lines and # comments are not
// operations; callers skip them before decoding.
func Decode(line string) (Op, error) {
	line = strings.TrimLeft(strings.TrimRight(line, "\r"), " \t")
	verb, rest, _ := strings.Cut(line, " ")

	switch strings.ToUpper(verb) {
	case "CLEAR":
		if strings.TrimSpace(rest) != "" {
			return Op{}, &cache.SerializationError{Detail: "CLEAR takes no arguments"}
		}
		return Op{Kind: OpClear}, nil
	case "GET", "DEL":
		key := strings.TrimSpace(rest)
		if key == "" || strings.ContainsAny(key, " \t") {
			return Op{}, &cache.SerializationError{Detail: fmt.Sprintf("%s needs exactly one key", verb)}
		}
		kind := OpGet
		if strings.EqualFold(verb, "DEL") {
			kind = OpRemove
		}
		return Op{Kind: kind, Key: key}, nil
	case "PUT":
		key, value, _ := strings.Cut(rest, " ")
		if key == "" || strings.ContainsRune(key, '\t') {
			return Op{}, &cache.SerializationError{Detail: "PUT needs a key"}
		}
		return Op{Kind: OpPut, Key: key, Value: value}, nil
	default:
		return Op{}, &cache.SerializationError{Detail: fmt.Sprintf("unknown verb %q", verb)}
	}
}

// WriteTrace encodes ops one per line.
func WriteTrace(w io.Writer, ops []Op) error {
	for i, op := range ops {
		line, err := Encode(op)
		if err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
	}
	return nil
}
