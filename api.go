// Package jsonlink maps JSON documents to and from statically
// described value shapes. A caller describes each aggregate once as a
// ClassBinding — the ordered member descriptions plus a projection
// pair — and the library derives both the parser and the serializer
// from that description alone.
package jsonlink

import (
	"fmt"

	"github.com/viant/jsonlink/parse"
)

// Parse materializes one described aggregate from data. With a Path
// option the bound object is located first by walking the
// dotted/bracketed path.
func Parse[T any](data []byte, binding *ClassBinding, opts ...Option) (T, error) {
	var zero T
	p, err := newParser(data, opts)
	if err != nil {
		return zero, err
	}
	v, err := p.parseClass(binding)
	if err != nil {
		return zero, err
	}
	result, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%v: FromFields produced %T", binding.Type, v)
	}
	return result, nil
}

// ParseArray materializes a sequence of described aggregates from a
// JSON array.
func ParseArray[T any](data []byte, binding *ClassBinding, opts ...Option) ([]T, error) {
	p, err := newParser(data, opts)
	if err != nil {
		return nil, err
	}
	if err = p.rng.Expect('['); err != nil {
		return nil, err
	}
	if err = p.rng.TrimLeftChecked(); err != nil {
		return nil, err
	}
	var out []T
	for {
		if p.rng.Empty() {
			return nil, p.rng.Errorf(ReasonUnexpectedEnd)
		}
		if p.rng.FrontIs(']') {
			p.rng.RemovePrefix()
			return out, nil
		}
		v, err := p.parseClass(binding)
		if err != nil {
			return nil, err
		}
		item, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("%v: FromFields produced %T", binding.Type, v)
		}
		out = append(out, item)
		if err = p.rng.CleanTail(); err != nil {
			return nil, err
		}
	}
}

// ParseValue parses a single value under an explicit member
// description. It is the low-level face of the dispatcher, useful for
// binding a scalar or a path-addressed sub-document.
func ParseValue(data []byte, member *Member, opts ...Option) (interface{}, error) {
	p, err := newParser(data, opts)
	if err != nil {
		return nil, err
	}
	return p.parseValue(member)
}

func newParser(data []byte, opts []Option) (*parser, error) {
	cfg := resolveOptions(opts)
	rng, ok, err := parse.FindRange(data, cfg.Path, cfg.policy())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &Error{Reason: ReasonPathNotFound, Offset: rng.Offset()}
	}
	return &parser{rng: rng, opts: cfg}, nil
}

// Serialize renders value under its binding into sink. Sink failures
// surface as *SinkError, keeping caller I/O faults distinct from
// description mismatches.
func Serialize[T any](value T, binding *ClassBinding, sink Sink, opts ...Option) error {
	s := &serializer{opts: resolveOptions(opts)}
	if err := s.appendClass(binding, value); err != nil {
		return err
	}
	if err := sink.AppendBytes(s.buf); err != nil {
		return &SinkError{Err: err}
	}
	return nil
}

// SerializeBytes renders value under its binding and returns the
// output buffer.
func SerializeBytes[T any](value T, binding *ClassBinding, opts ...Option) ([]byte, error) {
	s := &serializer{opts: resolveOptions(opts)}
	if err := s.appendClass(binding, value); err != nil {
		return nil, err
	}
	return s.buf, nil
}

// SerializeArray renders a sequence of described aggregates as a JSON
// array.
func SerializeArray[T any](values []T, binding *ClassBinding, sink Sink, opts ...Option) error {
	s := &serializer{opts: resolveOptions(opts)}
	s.buf = append(s.buf, '[')
	for i, value := range values {
		if i > 0 {
			s.buf = append(s.buf, ',')
		}
		if err := s.appendClass(binding, value); err != nil {
			return err
		}
	}
	s.buf = append(s.buf, ']')
	if err := sink.AppendBytes(s.buf); err != nil {
		return &SinkError{Err: err}
	}
	return nil
}

// FindRange locates a sub-document by path and returns the raw bytes
// of the single JSON value it addresses.
func FindRange(data []byte, path string, opts ...Option) ([]byte, bool, error) {
	cfg := resolveOptions(opts)
	rng, ok, err := parse.FindRange(data, path, cfg.policy())
	if err != nil || !ok {
		return nil, false, err
	}
	raw, err := parse.SkipValue(rng)
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}
