// Package response has utilities for working with RunFunctionResponses.
package response

import (
	"errors"
	"time"

	fnv1 "github.com/crossplane/function-sdk-go/proto/v1"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/9triver/fnrun/resource"
)

// DefaultTTL is the default duration for which a response may be cached.
const DefaultTTL = 1 * time.Minute

// To creates a response to the supplied request. The request's tag, desired
// resources, and context are automatically copied to the response, so a
// function only needs to mutate what it wants to change.
func To(req *fnv1.RunFunctionRequest, ttl time.Duration) *fnv1.RunFunctionResponse {
	return &fnv1.RunFunctionResponse{
		Meta: &fnv1.ResponseMeta{
			Tag: req.GetMeta().GetTag(),
			Ttl: durationpb.New(ttl),
		},
		Desired: req.GetDesired(),
		Context: req.GetContext(),
	}
}

// Normal adds a normal result to the response.
func Normal(rsp *fnv1.RunFunctionResponse, message string) {
	rsp.Results = append(rsp.Results, &fnv1.Result{
		Severity: fnv1.Severity_SEVERITY_NORMAL,
		Message:  message,
	})
}

// Warning adds a warning result to the response.
func Warning(rsp *fnv1.RunFunctionResponse, message string) {
	rsp.Results = append(rsp.Results, &fnv1.Result{
		Severity: fnv1.Severity_SEVERITY_WARNING,
		Message:  message,
	})
}

// Fatal adds a fatal result to the response.
func Fatal(rsp *fnv1.RunFunctionResponse, message string) {
	rsp.Results = append(rsp.Results, &fnv1.Result{
		Severity: fnv1.Severity_SEVERITY_FATAL,
		Message:  message,
	})
}

// SetOutput sets the response's arbitrary output data, written to an
// Operation's status.pipeline field.
func SetOutput(rsp *fnv1.RunFunctionResponse, output map[string]any) error {
	s, err := resource.AsStruct(output)
	if err != nil {
		return err
	}
	rsp.Output = s
	return nil
}

// A RequirementOption configures a resource requirement.
type RequirementOption func(*fnv1.ResourceSelector)

// MatchName requires a resource by name. Mutually exclusive with
// MatchLabels.
func MatchName(name string) RequirementOption {
	return func(sel *fnv1.ResourceSelector) {
		sel.Match = &fnv1.ResourceSelector_MatchName{MatchName: name}
	}
}

// MatchLabels requires resources by labels. Mutually exclusive with
// MatchName.
func MatchLabels(labels map[string]string) RequirementOption {
	return func(sel *fnv1.ResourceSelector) {
		sel.Match = &fnv1.ResourceSelector_MatchLabels{
			MatchLabels: &fnv1.MatchLabels{Labels: labels},
		}
	}
}

// InNamespace restricts a requirement to a namespace.
func InNamespace(namespace string) RequirementOption {
	return func(sel *fnv1.ResourceSelector) {
		sel.Namespace = &namespace
	}
}

// RequireResources adds a resource requirement to the response, telling the
// caller to fetch the matching resources and include them under the supplied
// name in the next call to the function. Exactly one of MatchName or
// MatchLabels must be supplied.
func RequireResources(rsp *fnv1.RunFunctionResponse, name, apiVersion, kind string, opts ...RequirementOption) error {
	sel := &fnv1.ResourceSelector{
		ApiVersion: apiVersion,
		Kind:       kind,
	}
	for _, o := range opts {
		o(sel)
	}
	if sel.Match == nil {
		return errors.New("exactly one of MatchName or MatchLabels must be supplied")
	}

	if rsp.Requirements == nil {
		rsp.Requirements = &fnv1.Requirements{}
	}
	if rsp.Requirements.Resources == nil {
		rsp.Requirements.Resources = map[string]*fnv1.ResourceSelector{}
	}
	rsp.Requirements.Resources[name] = sel
	return nil
}
