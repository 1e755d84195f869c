package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Login returns the gate's decision. Rejections come back as a response
// with no User, not as an error; err is reserved for transport and server
// failures.
func (c *Client) Login(ctx context.Context, login, senha string, opts ...grpc.CallOption) (types.LoginResponse, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, loginMethod, types.LoginRequest{Login: login, Senha: senha}.ToProto(), out, opts...)
	if err != nil {
		st, _ := status.FromError(err)
		if d, ok := decisionFor(st.Code()); ok {
			return types.LoginResponse{Message: st.Message(), Decision: d}, nil
		}
		return types.LoginResponse{}, err
	}
	return types.LoginResponseFromProto(out), nil
}
