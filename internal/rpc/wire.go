package rpc

import (
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every request and response type.
type Message interface {
	MarshalWire() []byte
	UnmarshalWire(b []byte) error
}

// encoder appends proto3 fields. Zero scalars are skipped like protoc output does.
type encoder struct{ b []byte }

func (e *encoder) str(num protowire.Number, s string) {
	if s == "" {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, s)
}

func (e *encoder) integer(num protowire.Number, v int64) {
	if v == 0 {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, uint64(v))
}

func (e *encoder) double(num protowire.Number, v float64) {
	if v == 0 {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.Fixed64Type)
	e.b = protowire.AppendFixed64(e.b, math.Float64bits(v))
}

func (e *encoder) boolean(num protowire.Number, v bool) {
	if !v {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeBool(v))
}

// msg writes an embedded message. Repeated fields call it once per element, even when empty.
func (e *encoder) msg(num protowire.Number, inner []byte) {
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, inner)
}

// timestamp writes a google.protobuf.Timestamp.
func (e *encoder) timestamp(num protowire.Number, t time.Time) {
	if t.IsZero() {
		return
	}
	var ts encoder
	ts.integer(1, t.Unix())
	ts.integer(2, int64(t.Nanosecond()))
	e.msg(num, ts.b)
}

type field struct {
	num   protowire.Number
	typ   protowire.Type
	value uint64
	bytes []byte
}

func (f field) str() string     { return string(f.bytes) }
func (f field) integer() int64  { return int64(f.value) }
func (f field) double() float64 { return math.Float64frombits(f.value) }
func (f field) boolean() bool   { return protowire.DecodeBool(f.value) }

func (f field) timestamp() (time.Time, error) {
	var sec, nsec int64
	err := walk(f.bytes, func(ff field) error {
		switch ff.num {
		case 1:
			sec = ff.integer()
		case 2:
			nsec = ff.integer()
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, nsec).UTC(), nil
}

// walk calls fn for each field in b. Groups are skipped.
func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.value, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.value, n = protowire.ConsumeFixed64(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			f.value = uint64(v)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if typ == protowire.StartGroupType {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
