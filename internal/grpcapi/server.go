package grpcapi

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/service"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

type Dependencies struct {
	Logger *zap.Logger
	Gate   *service.Gate
}

type Server struct {
	grpc   *grpc.Server
	gate   *service.Gate
	logger *zap.Logger
}

func NewServer(d Dependencies) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{gate: d.Gate, logger: logger}
	s.grpc = grpc.NewServer(grpc.UnaryInterceptor(s.logUnary))
	s.grpc.RegisterService(&serviceDesc, s)
	return s
}

func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

func (s *Server) GracefulStop() { s.grpc.GracefulStop() }

func (s *Server) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in := types.LoginRequestFromProto(req)

	adm, err := s.gate.Admit(ctx, in.Login, in.Senha)
	if err != nil {
		s.logger.Error("grpc login error", zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	resp := adm.Response()
	if !adm.Decision.Accepted() {
		return nil, rejection(resp)
	}
	return resp.ToProto(), nil
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	fields := []zap.Field{
		zap.String("method", info.FullMethod),
		zap.String("code", code.String()),
		zap.Duration("dur", time.Since(start)),
	}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error("rpc failed", fields...)
	} else {
		s.logger.Info("rpc", fields...)
	}
	return resp, err
}
