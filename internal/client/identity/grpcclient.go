package identity

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/vaultcore/internal/client/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCClient implements Client over a gRPC connection.
type GRPCClient struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// NewGRPCClient connects lazily to endpoint. Without extra options the
// connection uses plaintext credentials; timeout bounds each call when
// positive.
func NewGRPCClient(endpoint string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	dial := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(endpoint, dial...)
	if err != nil {
		return nil, fmt.Errorf("identity client: %w", err)
	}
	return &GRPCClient{conn: conn, timeout: timeout}, nil
}

func (c *GRPCClient) invoke(ctx context.Context, method string, req map[string]any) (*structpb.Struct, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", method, err)
	}
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (c *GRPCClient) Prelogin(ctx context.Context, email string) ([]byte, error) {
	resp, err := c.invoke(ctx, PreloginMethod, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}
	salt, err := base64.StdEncoding.DecodeString(resp.GetFields()["salt"].GetStringValue())
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt", ErrInvalidResponse)
	}
	return salt, nil
}

func (c *GRPCClient) Token(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	body := map[string]any{
		"email":    req.Email,
		"verifier": base64.StdEncoding.EncodeToString(req.Verifier),
	}
	if req.TwoFactorProvider != nil {
		body["two_factor_provider"] = float64(*req.TwoFactorProvider)
		body["two_factor_token"] = req.TwoFactorToken
		body["remember"] = req.Remember
	}

	resp, err := c.invoke(ctx, TokenMethod, body)
	if err != nil {
		return nil, err
	}
	return decodeToken(resp)
}

func decodeToken(s *structpb.Struct) (*TokenResponse, error) {
	f := s.GetFields()
	out := &TokenResponse{
		AccessToken:         f["access_token"].GetStringValue(),
		RefreshToken:        f["refresh_token"].GetStringValue(),
		ResetMasterPassword: f["reset_master_password"].GetBoolValue(),
	}

	if providers := f["two_factor_providers"].GetStructValue(); providers != nil {
		out.TwoFactorProviders = make(map[models.TwoFactorProviderType]map[string]string)
		for k, v := range providers.GetFields() {
			n, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("%w: provider %q", ErrInvalidResponse, k)
			}
			params := map[string]string{}
			for pk, pv := range v.GetStructValue().GetFields() {
				params[pk] = pv.GetStringValue()
			}
			out.TwoFactorProviders[models.TwoFactorProviderType(n)] = params
		}
	}

	if len(out.TwoFactorProviders) == 0 && out.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token", ErrInvalidResponse)
	}
	return out, nil
}

// Ping reports whether the identity service is serving.
func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
