// Package rpc holds the LegalService messages, codec and service descriptor.
//
// The messages are encoded by hand with protowire and follow the field numbers in
// api/legal/v1/legal.proto, which is the source of truth. Moving to generated code means
// running
//
//	protoc --go_out=. --go_opt=module=legal-booking-api \
//		--go-grpc_out=. --go-grpc_opt=module=legal-booking-api \
//		api/legal/v1/legal.proto
//
// from the module root, then deleting messages.go, types.go and wire.go. The codec keeps
// the name "proto", so generated clients and this package interoperate on the wire.
package rpc
