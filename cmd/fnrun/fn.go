package main

import (
	"context"

	fnv1 "github.com/crossplane/function-sdk-go/proto/v1"
	"github.com/sirupsen/logrus"

	"github.com/9triver/fnrun/request"
	"github.com/9triver/fnrun/response"
)

// Function is a development function that passes the desired state through
// unchanged. Useful for smoke testing a deployment before swapping in a
// real function.
type Function struct {
	fnv1.UnimplementedFunctionRunnerServiceServer
}

// RunFunction responds to the request with its own desired state and a
// normal result.
func (f *Function) RunFunction(ctx context.Context, req *fnv1.RunFunctionRequest) (*fnv1.RunFunctionResponse, error) {
	rsp := response.To(req, response.DefaultTTL)

	in := request.GetInput(req)
	logrus.Debugf("Running function, tag=%q, input fields=%d", req.GetMeta().GetTag(), len(in))

	response.Normal(rsp, "Desired state passed through unchanged")
	return rsp, nil
}
