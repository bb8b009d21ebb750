package protocol

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	Driver_Attach_FullMethodName = "/gale.Driver/Attach"
)

// DriverClient is the client API for the Driver service.
type DriverClient interface {
	// Bidirectional stream carrying executor updates up and driver requests down.
	Attach(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[ExecutorUpdate, DriverRequest], error)
}

type driverClient struct {
	cc grpc.ClientConnInterface
}

func NewDriverClient(cc grpc.ClientConnInterface) DriverClient {
	return &driverClient{cc}
}

func (c *driverClient) Attach(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[ExecutorUpdate, DriverRequest], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &Driver_ServiceDesc.Streams[0], Driver_Attach_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[ExecutorUpdate, DriverRequest]{ClientStream: stream}
	return x, nil
}

type Driver_AttachClient = grpc.BidiStreamingClient[ExecutorUpdate, DriverRequest]

// DriverServer is the server API for the Driver service.
// All implementations must embed UnimplementedDriverServer.
type DriverServer interface {
	// Bidirectional stream carrying executor updates up and driver requests down.
	Attach(grpc.BidiStreamingServer[ExecutorUpdate, DriverRequest]) error
	mustEmbedUnimplementedDriverServer()
}

// UnimplementedDriverServer must be embedded by value to have forward
// compatible implementations.
type UnimplementedDriverServer struct{}

func (UnimplementedDriverServer) Attach(grpc.BidiStreamingServer[ExecutorUpdate, DriverRequest]) error {
	return status.Errorf(codes.Unimplemented, "method Attach not implemented")
}
func (UnimplementedDriverServer) mustEmbedUnimplementedDriverServer() {}

func RegisterDriverServer(s grpc.ServiceRegistrar, srv DriverServer) {
	s.RegisterService(&Driver_ServiceDesc, srv)
}

func _Driver_Attach_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(DriverServer).Attach(&grpc.GenericServerStream[ExecutorUpdate, DriverRequest]{ServerStream: stream})
}

type Driver_AttachServer = grpc.BidiStreamingServer[ExecutorUpdate, DriverRequest]

// Driver_ServiceDesc is the grpc.ServiceDesc for the Driver service.
var Driver_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "gale.Driver",
	HandlerType: (*DriverServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Attach",
			Handler:       _Driver_Attach_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "protocol/driver.proto",
}
