package handler

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// bodyOf renders a request message as the JSON body the services validate.
func bodyOf(in *structpb.Struct) ([]byte, error) {
	if in == nil {
		return []byte("{}"), nil
	}
	body, err := in.MarshalJSON()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "request body is not valid JSON")
	}
	return body, nil
}

// toStruct converts a response value into a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(b); err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return out, nil
}

// stringField returns the string value of key, or "" when it is absent or
// not a string.
func stringField(in *structpb.Struct, key string) string {
	if in == nil {
		return ""
	}
	v, ok := in.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}
