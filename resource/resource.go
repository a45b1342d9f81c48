// Package resource converts between Go maps and the protobuf Struct
// encoding Crossplane uses for observed and desired resources.
package resource

import (
	fnv1 "github.com/crossplane/function-sdk-go/proto/v1"
	"google.golang.org/protobuf/types/known/structpb"
)

// AsStruct converts the supplied map to a protobuf Struct. Functions must
// return desired resources encoded as structs; this makes it possible to
// build them as plain maps first.
func AsStruct(m map[string]any) (*structpb.Struct, error) {
	return structpb.NewStruct(m)
}

// AsMap converts the supplied Struct to a map. A nil Struct becomes an empty
// map, never nil.
func AsMap(s *structpb.Struct) map[string]any {
	if s == nil {
		return map[string]any{}
	}
	return s.AsMap()
}

// Update adds the supplied fields to a composite or composed resource.
// Top-level fields that don't exist are added; fields that exist are
// overwritten.
func Update(r *fnv1.Resource, source map[string]any) error {
	s, err := AsStruct(source)
	if err != nil {
		return err
	}
	if r.Resource == nil || r.Resource.Fields == nil {
		r.Resource = s
		return nil
	}
	for k, v := range s.GetFields() {
		r.Resource.Fields[k] = v
	}
	return nil
}

// A Condition is a status condition of a resource.
type Condition struct {
	// Type of the condition - e.g. Ready.
	Type string

	// Status of the condition - True, False, or Unknown.
	Status string

	// Reason for the condition status - typically CamelCase.
	Reason string

	// Optional message.
	Message string
}

// GetCondition returns the supplied status condition of the supplied
// resource. A condition is always returned: if it isn't present in the
// resource, one with status Unknown is returned instead.
func GetCondition(res *structpb.Struct, typ string) Condition {
	unknown := Condition{Type: typ, Status: "Unknown"}

	conditions := res.GetFields()["status"].GetStructValue().GetFields()["conditions"].GetListValue()
	for _, v := range conditions.GetValues() {
		fields := v.GetStructValue().GetFields()
		if fields["type"].GetStringValue() != typ {
			continue
		}
		return Condition{
			Type:    typ,
			Status:  fields["status"].GetStringValue(),
			Reason:  fields["reason"].GetStringValue(),
			Message: fields["message"].GetStringValue(),
		}
	}
	return unknown
}
