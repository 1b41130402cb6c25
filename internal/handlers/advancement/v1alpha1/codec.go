package v1alpha1

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// decode reads a Struct request into a typed message. Unknown fields are
// rejected so typos surface as InvalidArgument.
func decode(req *structpb.Struct, out any) error {
	if req == nil {
		return nil
	}
	data, err := protojson.Marshal(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "unreadable request")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errors.InvalidArgumentf("invalid request: %v", err)
	}
	return nil
}

// encode writes a typed message as a Struct response
func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

// Decode reads a Struct response into a typed message on the client side
func Decode(resp *structpb.Struct, out any) error {
	data, err := protojson.Marshal(resp)
	if err != nil {
		return errors.Wrap(err, "unreadable response")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "invalid response")
	}
	return nil
}

// Encode writes a typed request as a Struct on the client side
func Encode(v any) (*structpb.Struct, error) {
	return encode(v)
}
