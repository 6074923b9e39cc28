package grpc

// proto.go holds the hand-maintained service descriptor for
// scamalyst.v1.AnalyzerService. Messages travel with the "json" codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const analyzerServiceName = "scamalyst.v1.AnalyzerService"

// Full method names, as seen by interceptors.
const (
	MethodAnalyzeMessage = "/" + analyzerServiceName + "/AnalyzeMessage"
	MethodDetectAI       = "/" + analyzerServiceName + "/DetectAI"
	MethodAnalyzeWebsite = "/" + analyzerServiceName + "/AnalyzeWebsite"
)

// AnalyzerServiceServer is the server API for AnalyzerService.
type AnalyzerServiceServer interface {
	AnalyzeMessage(context.Context, *AnalyzeTextRequest) (*MessageAnalysis, error)
	DetectAI(context.Context, *AnalyzeTextRequest) (*AIAnalysis, error)
	AnalyzeWebsite(context.Context, *AnalyzeWebsiteRequest) (*WebsiteAnalysis, error)
	mustEmbedUnimplementedAnalyzerServiceServer()
}

// UnimplementedAnalyzerServiceServer answers every method with Unimplemented.
type UnimplementedAnalyzerServiceServer struct{}

func (UnimplementedAnalyzerServiceServer) AnalyzeMessage(context.Context, *AnalyzeTextRequest) (*MessageAnalysis, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeMessage not implemented")
}
func (UnimplementedAnalyzerServiceServer) DetectAI(context.Context, *AnalyzeTextRequest) (*AIAnalysis, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DetectAI not implemented")
}
func (UnimplementedAnalyzerServiceServer) AnalyzeWebsite(context.Context, *AnalyzeWebsiteRequest) (*WebsiteAnalysis, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeWebsite not implemented")
}
func (UnimplementedAnalyzerServiceServer) mustEmbedUnimplementedAnalyzerServiceServer() {}

// RegisterAnalyzerServiceServer registers srv with s.
func RegisterAnalyzerServiceServer(s grpclib.ServiceRegistrar, srv AnalyzerServiceServer) {
	s.RegisterService(&_AnalyzerService_serviceDesc, srv)
}

//nolint:revive // gRPC handler registration
var _AnalyzerService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: analyzerServiceName,
	HandlerType: (*AnalyzerServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeMessage", Handler: _AnalyzerService_AnalyzeMessage_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "DetectAI", Handler: _AnalyzerService_DetectAI_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "AnalyzeWebsite", Handler: _AnalyzerService_AnalyzeWebsite_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _AnalyzerService_AnalyzeMessage_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AnalyzeTextRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServiceServer).AnalyzeMessage(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodAnalyzeMessage}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyzerServiceServer).AnalyzeMessage(ctx, req.(*AnalyzeTextRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AnalyzerService_DetectAI_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AnalyzeTextRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServiceServer).DetectAI(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodDetectAI}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyzerServiceServer).DetectAI(ctx, req.(*AnalyzeTextRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AnalyzerService_AnalyzeWebsite_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AnalyzeWebsiteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServiceServer).AnalyzeWebsite(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodAnalyzeWebsite}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyzerServiceServer).AnalyzeWebsite(ctx, req.(*AnalyzeWebsiteRequest))
	}
	return interceptor(ctx, in, info, handler)
}
