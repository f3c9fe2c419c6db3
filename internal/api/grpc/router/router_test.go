package router

import (
	"context"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	apicontext "github.com/saloonbook/saloon-server/internal/api/context"
	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/mocks"
	"github.com/saloonbook/saloon-server/internal/model"
	"github.com/saloonbook/saloon-server/internal/testutil"
)

type deps struct {
	auth     *mocks.AuthService
	accounts *mocks.AccountService
	salons   *mocks.SalonService
	authn    *mocks.Authenticator
}

func startServer(t *testing.T) (*grpc.ClientConn, deps) {
	t.Helper()

	d := deps{
		auth:     mocks.NewAuthService(t),
		accounts: mocks.NewAccountService(t),
		salons:   mocks.NewSalonService(t),
		authn:    mocks.NewAuthenticator(t),
	}
	r := New(d.auth, d.accounts, d.salons, d.authn, apicontext.NewManager(), nil, testutil.MakeNoopLogger())
	s := r.Register()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn, d
}

func call(ctx context.Context, conn *grpc.ClientConn, method string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	err = conn.Invoke(ctx, method, req, out)
	return out, err
}

func TestRouter_LoginIsPublic(t *testing.T) {
	t.Parallel()

	conn, d := startServer(t)
	d.auth.On("Login", mock.Anything, mock.Anything).Return("tok", nil).Once()

	var header metadata.MD
	req, err := structpb.NewStruct(map[string]any{"email": "a@x.com", "password": "secret1"})
	require.NoError(t, err)
	out := &structpb.Struct{}
	err = conn.Invoke(context.Background(), "/saloon.v1.Auth/Login", req, out, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, "tok", out.GetFields()["token"].GetStringValue())
	assert.Equal(t, []string{"tok"}, header.Get("auth-token"))
}

func TestRouter_ProtectedRequiresToken(t *testing.T) {
	t.Parallel()

	conn, d := startServer(t)
	d.authn.On("Authenticate", mock.Anything, "").Return(model.TokenClaims{}, apierrors.NewInvalidToken()).Once()

	_, err := call(context.Background(), conn, "/saloon.v1.Saloons/List", nil)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRouter_ProtectedCarriesCaller(t *testing.T) {
	t.Parallel()

	conn, d := startServer(t)
	callerID := uuid.New()
	claims := model.TokenClaims{AccountID: callerID, JTI: "jti"}

	d.authn.On("Authenticate", mock.Anything, "good").Return(claims, nil)
	d.salons.On("Delete", mock.Anything, callerID, mock.Anything).
		Return(apierrors.NewAuthorizationFailure("delete this salon")).Once()
	d.auth.On("Logout", mock.Anything, claims).Return(nil).Once()

	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer good")

	_, err := call(ctx, conn, "/saloon.v1.Saloons/Delete", map[string]any{"id": uuid.NewString()})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = call(ctx, conn, "/saloon.v1.Auth/Logout", nil)
	assert.NoError(t, err)
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	conn, d := startServer(t)
	d.auth.On("Register", mock.Anything, mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Once()

	_, err := call(context.Background(), conn, "/saloon.v1.Auth/Register", map[string]any{"email": "a@x.com"})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRouter_ServicesCarryNoDescriptorMetadata(t *testing.T) {
	t.Parallel()

	r := New(mocks.NewAuthService(t), mocks.NewAccountService(t), mocks.NewSalonService(t),
		mocks.NewAuthenticator(t), apicontext.NewManager(), nil, testutil.MakeNoopLogger())
	s := r.Register()
	t.Cleanup(s.Stop)

	info := s.GetServiceInfo()
	require.Len(t, info, 3)
	for name, svc := range info {
		assert.Nil(t, svc.Metadata, "service %s", name)
		assert.NotEmpty(t, svc.Methods, "service %s", name)
	}
	_, reflected := info["grpc.reflection.v1.ServerReflection"]
	assert.False(t, reflected)
}
