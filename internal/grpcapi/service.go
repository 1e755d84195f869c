// Package grpcapi exposes the admission gate over gRPC for turnstile and
// kiosk clients that already speak it. Messages are google.protobuf.Struct
// values carrying the same field names as the HTTP JSON bodies.
package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

const (
	ServiceName = "checkin.v1.Admission"
	loginMethod = "/" + ServiceName + "/Login"
)

// AdmissionServer is implemented by Server. Accepted logins return the
// response payload; rejections return a status whose code mirrors the HTTP
// status of the same decision.
type AdmissionServer interface {
	Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdmissionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: loginHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "checkin/v1/admission.proto",
}

func loginHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdmissionServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: loginMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AdmissionServer).Login(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// codeFor maps rejected decisions onto gRPC codes. Accepted decisions are
// never passed here.
func codeFor(d types.Decision) codes.Code {
	switch d {
	case types.DecisionRejectedOutOfWindow:
		return codes.PermissionDenied
	case types.DecisionRejectedAlreadyCheckedIn:
		return codes.AlreadyExists
	default:
		return codes.Unauthenticated
	}
}

// decisionFor is the inverse of codeFor, used by Client.
func decisionFor(c codes.Code) (types.Decision, bool) {
	switch c {
	case codes.Unauthenticated:
		return types.DecisionRejectedBadCredentials, true
	case codes.PermissionDenied:
		return types.DecisionRejectedOutOfWindow, true
	case codes.AlreadyExists:
		return types.DecisionRejectedAlreadyCheckedIn, true
	}
	return "", false
}

func rejection(resp types.LoginResponse) error {
	return status.Error(codeFor(resp.Decision), resp.Message)
}
