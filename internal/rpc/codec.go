package rpc

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// wireCodec marshals Message values. It reports the "proto" name so
// stock gRPC and grpc-web clients interoperate with it.
type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("rpc: cannot marshal %T", v)
	}
	return m.MarshalWire(), nil
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("rpc: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}

func (wireCodec) Name() string { return "proto" }

// Codec is the codec servers and clients of LegalService must force.
func Codec() encoding.Codec { return wireCodec{} }
