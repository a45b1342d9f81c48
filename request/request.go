// Package request has utilities for working with RunFunctionRequests.
package request

import (
	fnv1 "github.com/crossplane/function-sdk-go/proto/v1"

	"github.com/9triver/fnrun/resource"
)

// WatchedResourceName is the requirement name under which a WatchOperation
// injects the resource that triggered an operation.
const WatchedResourceName = "ops.crossplane.io/watched-resource"

// Credentials supplied to a function.
type Credentials struct {
	// Type of the credentials.
	Type string

	// Data of the credentials.
	Data map[string]string
}

// GetInput returns the function's input as a map. Empty if no input was
// supplied.
func GetInput(req *fnv1.RunFunctionRequest) map[string]any {
	return resource.AsMap(req.GetInput())
}

// GetRequiredResources returns the required resources with the supplied name
// as maps. Nil if no resources with that name were supplied.
func GetRequiredResources(req *fnv1.RunFunctionRequest, name string) []map[string]any {
	rs, ok := req.GetRequiredResources()[name]
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(rs.GetItems()))
	for _, item := range rs.GetItems() {
		out = append(out, resource.AsMap(item.GetResource()))
	}
	return out
}

// GetRequiredResource returns the first required resource with the supplied
// name, for requirements known to select exactly one resource. Nil if none
// were supplied.
func GetRequiredResource(req *fnv1.RunFunctionRequest, name string) map[string]any {
	rs := GetRequiredResources(req, name)
	if len(rs) == 0 {
		return nil
	}
	return rs[0]
}

// GetWatchedResource returns the resource whose change triggered this
// operation, or nil if the request wasn't triggered by a watch.
func GetWatchedResource(req *fnv1.RunFunctionRequest) map[string]any {
	return GetRequiredResource(req, WatchedResourceName)
}

// GetCredentials returns the named credentials from the request. If they
// don't exist, empty credentials with type "data" are returned.
func GetCredentials(req *fnv1.RunFunctionRequest, name string) Credentials {
	empty := Credentials{Type: "data", Data: map[string]string{}}

	cred, ok := req.GetCredentials()[name]
	if !ok {
		return empty
	}

	switch src := cred.GetSource().(type) {
	case *fnv1.Credentials_CredentialData:
		data := make(map[string]string, len(src.CredentialData.GetData()))
		for k, v := range src.CredentialData.GetData() {
			data[k] = string(v)
		}
		return Credentials{Type: "credential_data", Data: data}
	}
	return empty
}
