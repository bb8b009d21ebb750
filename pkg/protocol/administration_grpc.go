package protocol

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
	emptypb "google.golang.org/protobuf/types/known/emptypb"
)

const (
	Administration_Status_FullMethodName          = "/gale.Administration/Status"
	Administration_ListExecutors_FullMethodName   = "/gale.Administration/ListExecutors"
	Administration_StopApplication_FullMethodName = "/gale.Administration/StopApplication"
)

// AdministrationClient is the client API for the Administration service.
type AdministrationClient interface {
	// Snapshot of the application and its registration progress.
	Status(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*StatusResponse, error)
	// All executors currently registered with the driver.
	ListExecutors(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListExecutorsResponse, error)
	// Ask the driver to shut the application down.
	StopApplication(ctx context.Context, in *StopApplicationRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type administrationClient struct {
	cc grpc.ClientConnInterface
}

func NewAdministrationClient(cc grpc.ClientConnInterface) AdministrationClient {
	return &administrationClient{cc}
}

func (c *administrationClient) Status(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(StatusResponse)
	err := c.cc.Invoke(ctx, Administration_Status_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *administrationClient) ListExecutors(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListExecutorsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(ListExecutorsResponse)
	err := c.cc.Invoke(ctx, Administration_ListExecutors_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *administrationClient) StopApplication(ctx context.Context, in *StopApplicationRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(emptypb.Empty)
	err := c.cc.Invoke(ctx, Administration_StopApplication_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AdministrationServer is the server API for the Administration service.
// All implementations must embed UnimplementedAdministrationServer.
type AdministrationServer interface {
	// Snapshot of the application and its registration progress.
	Status(context.Context, *emptypb.Empty) (*StatusResponse, error)
	// All executors currently registered with the driver.
	ListExecutors(context.Context, *emptypb.Empty) (*ListExecutorsResponse, error)
	// Ask the driver to shut the application down.
	StopApplication(context.Context, *StopApplicationRequest) (*emptypb.Empty, error)
	mustEmbedUnimplementedAdministrationServer()
}

// UnimplementedAdministrationServer must be embedded by value to have
// forward compatible implementations.
type UnimplementedAdministrationServer struct{}

func (UnimplementedAdministrationServer) Status(context.Context, *emptypb.Empty) (*StatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Status not implemented")
}
func (UnimplementedAdministrationServer) ListExecutors(context.Context, *emptypb.Empty) (*ListExecutorsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListExecutors not implemented")
}
func (UnimplementedAdministrationServer) StopApplication(context.Context, *StopApplicationRequest) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StopApplication not implemented")
}
func (UnimplementedAdministrationServer) mustEmbedUnimplementedAdministrationServer() {}

func RegisterAdministrationServer(s grpc.ServiceRegistrar, srv AdministrationServer) {
	s.RegisterService(&Administration_ServiceDesc, srv)
}

func _Administration_Status_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdministrationServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Administration_Status_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AdministrationServer).Status(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Administration_ListExecutors_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdministrationServer).ListExecutors(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Administration_ListExecutors_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AdministrationServer).ListExecutors(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Administration_StopApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StopApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdministrationServer).StopApplication(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Administration_StopApplication_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AdministrationServer).StopApplication(ctx, req.(*StopApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Administration_ServiceDesc is the grpc.ServiceDesc for the Administration service.
var Administration_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "gale.Administration",
	HandlerType: (*AdministrationServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Status",
			Handler:    _Administration_Status_Handler,
		},
		{
			MethodName: "ListExecutors",
			Handler:    _Administration_ListExecutors_Handler,
		},
		{
			MethodName: "StopApplication",
			Handler:    _Administration_StopApplication_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "protocol/driver.proto",
}
