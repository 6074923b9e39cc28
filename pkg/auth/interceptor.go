package auth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryAuthInterceptor validates the bearer token in the "authorization"
// metadata and stores its claims in the handler context. Full method names in
// public are served anonymously.
func UnaryAuthInterceptor(jwtService *JWTService, public []string) grpc.UnaryServerInterceptor {
	open := methodSet(public)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return handler(ctx, req)
		}
		claims, err := authenticate(ctx, jwtService)
		if err != nil {
			return nil, err
		}
		return handler(ContextWithClaims(ctx, claims), req)
	}
}

// StreamAuthInterceptor is UnaryAuthInterceptor for streaming methods such
// as health Watch and server reflection.
func StreamAuthInterceptor(jwtService *JWTService, public []string) grpc.StreamServerInterceptor {
	open := methodSet(public)
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if open[info.FullMethod] {
			return handler(srv, ss)
		}
		claims, err := authenticate(ss.Context(), jwtService)
		if err != nil {
			return err
		}
		return handler(srv, &claimsStream{ServerStream: ss, ctx: ContextWithClaims(ss.Context(), claims)})
	}
}

type claimsStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *claimsStream) Context() context.Context { return s.ctx }

func authenticate(ctx context.Context, jwtService *JWTService) (*Claims, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	header := md.Get("authorization")
	if len(header) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing authorization header")
	}
	token, ok := BearerToken(header[0])
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "invalid authorization format")
	}
	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
	}
	return claims, nil
}

func methodSet(methods []string) map[string]bool {
	set := make(map[string]bool, len(methods))
	for _, m := range methods {
		set[m] = true
	}
	return set
}

// UnaryRoleInterceptor gates methods listed in methodRoles on the caller
// holding one of the listed roles. It must run after UnaryAuthInterceptor.
// Methods not in the map only need a valid token.
func UnaryRoleInterceptor(methodRoles map[string][]string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		roles, guarded := methodRoles[info.FullMethod]
		if !guarded {
			return handler(ctx, req)
		}
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "authentication required")
		}
		if !HasAnyRole(claims, roles...) {
			return nil, status.Errorf(codes.PermissionDenied, "requires one of %v", roles)
		}
		return handler(ctx, req)
	}
}
