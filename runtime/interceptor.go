package runtime

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// logCalls returns an interceptor that assigns each call a short ID and logs
// its method, outcome and duration. Per-call errors are logged and returned
// untouched; they never affect other in-flight calls.
func logCalls() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := shortuuid.New()
		start := time.Now()

		rsp, err := handler(ctx, req)

		log := logrus.WithFields(logrus.Fields{
			"call":     id,
			"method":   info.FullMethod,
			"duration": time.Since(start).String(),
		})
		if err != nil {
			log.Warnf("Call failed: %v", err)
			return rsp, err
		}
		log.Debug("Call handled")
		return rsp, nil
	}
}
