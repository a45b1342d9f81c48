package runtime

import (
	"context"

	fnv1 "github.com/crossplane/function-sdk-go/proto/v1"
	fnv1beta1 "github.com/crossplane/function-sdk-go/proto/v1beta1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

// BetaRunner makes a v1 function answer v1beta1 calls. The two schemas are
// wire compatible: every v1beta1 field has an identically numbered v1 field,
// so requests and responses are bridged by re-encoding the bytes under the
// other version. Fields only one side understands are silently dropped.
type BetaRunner struct {
	fnv1beta1.UnimplementedFunctionRunnerServiceServer

	wrapped fnv1.FunctionRunnerServiceServer
}

// NewBetaRunner wraps the supplied v1 function.
func NewBetaRunner(wrapped fnv1.FunctionRunnerServiceServer) *BetaRunner {
	return &BetaRunner{wrapped: wrapped}
}

// RunFunction translates the v1beta1 request to v1, delegates to the wrapped
// function, and translates its response back. Translation failures surface
// as Internal errors; errors from the wrapped function pass through with
// their original status.
func (r *BetaRunner) RunFunction(ctx context.Context, req *fnv1beta1.RunFunctionRequest) (*fnv1beta1.RunFunctionResponse, error) {
	b, err := proto.Marshal(req)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "cannot marshal v1beta1 RunFunctionRequest: %v", err)
	}
	v1req := &fnv1.RunFunctionRequest{}
	if err := proto.Unmarshal(b, v1req); err != nil {
		return nil, status.Errorf(codes.Internal, "cannot unmarshal request bytes as v1 RunFunctionRequest: %v", err)
	}

	v1rsp, err := r.wrapped.RunFunction(ctx, v1req)
	if err != nil {
		return nil, err
	}

	b, err = proto.Marshal(v1rsp)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "cannot marshal v1 RunFunctionResponse: %v", err)
	}
	rsp := &fnv1beta1.RunFunctionResponse{}
	if err := proto.Unmarshal(b, rsp); err != nil {
		return nil, status.Errorf(codes.Internal, "cannot unmarshal response bytes as v1beta1 RunFunctionResponse: %v", err)
	}
	return rsp, nil
}
