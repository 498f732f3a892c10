// Package protocol encodes the {type, payload} envelope exchanged with
// clients. Every codec carries the same message vocabulary; the client
// picks one with the ?protocol= query parameter.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/besuhoff/predator-arena-go/internal/types"
)

var (
	ErrUnknownMessage   = errors.New("unknown message type")
	ErrMalformedPayload = errors.New("malformed payload")
)

var inboundTypes = map[types.MessageType]bool{
	types.MsgTypeJoinGame:       true,
	types.MsgTypePlayerInput:    true,
	types.MsgTypePlayerShoot:    true,
	types.MsgTypePredatorAttack: true,
	types.MsgTypeFakeTrail:      true,
	types.MsgTypeCollectBonus:   true,
}

// Codec converts messages to and from websocket frames
type Codec interface {
	Name() string
	// FrameType is websocket.TextMessage or websocket.BinaryMessage.
	FrameType() int
	Encode(msg types.Message) ([]byte, error)
	Decode(data []byte) (*Frame, error)
}

// NewCodec returns the codec registered under name. An empty name selects JSON.
func NewCodec(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	case "proto", "binary":
		return ProtoCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported protocol %q", name)
	}
}

// Frame is a decoded inbound envelope. The payload is bound on demand
// because its shape depends on Type.
type Frame struct {
	Type      types.MessageType
	payload   []byte
	unmarshal func(data []byte, v interface{}) error
}

// Bind decodes the payload into v. An absent payload leaves v untouched.
func (f *Frame) Bind(v interface{}) error {
	if len(f.payload) == 0 {
		return nil
	}
	if err := f.unmarshal(f.payload, v); err != nil {
		return fmt.Errorf("%w for %s: %v", ErrMalformedPayload, f.Type, err)
	}
	return nil
}

func newFrame(msgType string, payload []byte, unmarshal func([]byte, interface{}) error) (*Frame, error) {
	t := types.MessageType(msgType)
	if !inboundTypes[t] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msgType)
	}
	return &Frame{Type: t, payload: payload, unmarshal: unmarshal}, nil
}

// JSONCodec is the default text protocol
type JSONCodec struct{}

type jsonEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (JSONCodec) Name() string   { return "json" }
func (JSONCodec) FrameType() int { return websocket.TextMessage }

func (JSONCodec) Encode(msg types.Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", msg.Type, err)
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte) (*Frame, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	payload := []byte(env.Payload)
	if bytes.Equal(payload, []byte("null")) {
		payload = nil
	}
	return newFrame(env.Type, payload, json.Unmarshal)
}

// MsgpackCodec is a compact binary protocol sharing the JSON field names
type MsgpackCodec struct{}

type msgpackEnvelope struct {
	Type    string             `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

func (MsgpackCodec) Name() string   { return "msgpack" }
func (MsgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (MsgpackCodec) Encode(msg types.Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(msg); err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", msg.Type, err)
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Decode(data []byte) (*Frame, error) {
	var env msgpackEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	payload := []byte(env.Payload)
	if bytes.Equal(payload, []byte{0xc0}) { // nil
		payload = nil
	}
	return newFrame(env.Type, payload, unmarshalMsgpack)
}

func unmarshalMsgpack(data []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// ProtoCodec carries the envelope as a google.protobuf.Struct
type ProtoCodec struct{}

func (ProtoCodec) Name() string   { return "proto" }
func (ProtoCodec) FrameType() int { return websocket.BinaryMessage }

func (ProtoCodec) Encode(msg types.Message) ([]byte, error) {
	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s payload: %w", msg.Type, err)
	}
	value := &structpb.Value{}
	if err := protojson.Unmarshal(payload, value); err != nil {
		return nil, fmt.Errorf("converting %s payload: %w", msg.Type, err)
	}

	env := &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"type":    structpb.NewStringValue(string(msg.Type)),
			"payload": value,
		},
	}
	data, err := proto.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", msg.Type, err)
	}
	return data, nil
}

func (ProtoCodec) Decode(data []byte) (*Frame, error) {
	env := &structpb.Struct{}
	if err := proto.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var payload []byte
	if value, ok := env.Fields["payload"]; ok {
		if _, isNull := value.GetKind().(*structpb.Value_NullValue); !isNull {
			raw, err := protojson.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
			}
			payload = raw
		}
	}
	return newFrame(env.Fields["type"].GetStringValue(), payload, json.Unmarshal)
}
