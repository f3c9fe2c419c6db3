package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service names. Every method takes and returns a google.protobuf.Struct
// holding the same JSON document the HTTP API uses.
const (
	AuthServiceName     = "saloon.v1.Auth"
	AccountsServiceName = "saloon.v1.Accounts"
	SaloonsServiceName  = "saloon.v1.Saloons"
)

// AuthServer is the server API for saloon.v1.Auth.
type AuthServer interface {
	Register(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Logout(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// AccountsServer is the server API for saloon.v1.Accounts.
type AccountsServer interface {
	Get(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Edit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// SaloonsServer is the server API for saloon.v1.Saloons.
type SaloonsServer interface {
	Create(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	List(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Get(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Edit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Delete(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// unary builds the method descriptor of a Struct-to-Struct call.
func unary[S any](service, method string, call func(S, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// AuthServiceDesc is the grpc.ServiceDesc for saloon.v1.Auth.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AuthServiceName, "Register", AuthServer.Register),
		unary(AuthServiceName, "Login", AuthServer.Login),
		unary(AuthServiceName, "Logout", AuthServer.Logout),
	},
}

// AccountsServiceDesc is the grpc.ServiceDesc for saloon.v1.Accounts.
var AccountsServiceDesc = grpc.ServiceDesc{
	ServiceName: AccountsServiceName,
	HandlerType: (*AccountsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AccountsServiceName, "Get", AccountsServer.Get),
		unary(AccountsServiceName, "Edit", AccountsServer.Edit),
	},
}

// SaloonsServiceDesc is the grpc.ServiceDesc for saloon.v1.Saloons.
var SaloonsServiceDesc = grpc.ServiceDesc{
	ServiceName: SaloonsServiceName,
	HandlerType: (*SaloonsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(SaloonsServiceName, "Create", SaloonsServer.Create),
		unary(SaloonsServiceName, "List", SaloonsServer.List),
		unary(SaloonsServiceName, "Get", SaloonsServer.Get),
		unary(SaloonsServiceName, "Edit", SaloonsServer.Edit),
		unary(SaloonsServiceName, "Delete", SaloonsServer.Delete),
	},
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func RegisterAccountsServer(s grpc.ServiceRegistrar, srv AccountsServer) {
	s.RegisterService(&AccountsServiceDesc, srv)
}

func RegisterSaloonsServer(s grpc.ServiceRegistrar, srv SaloonsServer) {
	s.RegisterService(&SaloonsServiceDesc, srv)
}
