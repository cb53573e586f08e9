// Package rpcx wires the RPC surface onto grpc-go without a
// protoc step. The wire messages in internal/rpcapi are plain Go structs;
// this file registers the JSON codec grpc-go dials into via the
// "content-subtype" mechanism, the same extension point real gateway code
// uses to move non-protobuf payloads over grpc's HTTP/2 transport.
package rpcx

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype every client and server in this module
// negotiates; see grpc.CallContentSubtype and grpc.ForceServerCodec.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements encoding.Codec (Marshal/Unmarshal/Name) for the
// plain request/reply structs defined under internal/rpcapi.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpcx: marshal: %w", err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("rpcx: unmarshal: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string {
	return CodecName
}
