package grpc

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jeeves-cluster-organization/rmi-introspector/commbus"
	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/rmi"
	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/rmi/schema"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// IntrospectionServer exposes rmi.Examine over gRPC. The request and
// response are *structpb.Struct rather than protoc-generated message
// types: no .proto/generated stubs are available in this module, so the
// wire contract is carried as a generic struct built from the same JSON
// shapes schema.Load and InterfaceDescriptor.MarshalJSON already produce.
//
// When bus is non-nil, every call publishes an InterfaceExamined or
// IntrospectionFailed domain event, letting other components (audit
// logging, cache warming) observe introspection traffic without coupling
// to gRPC.
type IntrospectionServer struct {
	logger Logger
	bus    commbus.CommBus
}

// NewIntrospectionServer constructs a server with the given logger. bus may
// be nil to disable domain-event publishing.
func NewIntrospectionServer(logger Logger, bus commbus.CommBus) *IntrospectionServer {
	if logger == nil {
		logger = noopGRPCLogger{}
	}
	return &IntrospectionServer{logger: logger, bus: bus}
}

// publishExamined publishes commbus.InterfaceExamined for a successful
// DescribeInterface call, if a bus was configured.
func (s *IntrospectionServer) publishExamined(ctx context.Context, invocationID string, desc *rmi.InterfaceDescriptor, stubName string, fromCache bool, methodNames []string) {
	if s.bus == nil {
		return
	}
	event := &commbus.InterfaceExamined{
		InvocationID: invocationID,
		InterfaceID:  desc.ID().String(),
		StubName:     stubName,
		FromCache:    fromCache,
		MethodNames:  methodNames,
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("describe_interface_publish_failed", "event", "InterfaceExamined", "error", err.Error())
	}
}

// publishFailed publishes commbus.IntrospectionFailed for a rejected
// DescribeInterface call, if a bus was configured.
func (s *IntrospectionServer) publishFailed(ctx context.Context, invocationID, stubName string, cause error) {
	if s.bus == nil {
		return
	}
	event := &commbus.IntrospectionFailed{
		InvocationID: invocationID,
		StubName:     stubName,
		Reason:       cause.Error(),
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("describe_interface_publish_failed", "event", "IntrospectionFailed", "error", err.Error())
	}
}

type noopGRPCLogger struct{}

func (noopGRPCLogger) Debug(msg string, keysAndValues ...any) {}
func (noopGRPCLogger) Info(msg string, keysAndValues ...any)  {}
func (noopGRPCLogger) Warn(msg string, keysAndValues ...any)  {}
func (noopGRPCLogger) Error(msg string, keysAndValues ...any) {}

// DescribeInterface decodes req as a schema.Document, examines it, and
// returns the resolved InterfaceDescriptor's wire form as a struct.
func (s *IntrospectionServer) DescribeInterface(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	invocationID := uuid.NewString()
	doc := req.AsMap()

	src, err := schema.Load(doc, nil)
	if err != nil {
		s.logger.Warn("describe_interface_schema_error", "error", err.Error())
		s.publishFailed(ctx, invocationID, "", err)
		return nil, status.Errorf(codes.InvalidArgument, "rmi: %v", err)
	}

	desc, fromCache, err := rmi.DefaultContext().ExamineWithInfo(src)
	if err != nil {
		s.logger.Warn("describe_interface_examine_error", "interface", src.Name, "error", err.Error())
		s.publishFailed(ctx, invocationID, src.Name, err)
		return nil, status.Errorf(codes.FailedPrecondition, "rmi: %v", err)
	}

	methodNames := make([]string, 0, len(desc.Methods()))
	for _, m := range desc.Methods() {
		methodNames = append(methodNames, m.Name())
	}
	s.publishExamined(ctx, invocationID, desc, src.Name, fromCache, methodNames)

	encoded, err := json.Marshal(desc)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "rmi: encode descriptor: %v", err)
	}

	var asMap map[string]any
	if err := json.Unmarshal(encoded, &asMap); err != nil {
		return nil, status.Errorf(codes.Internal, "rmi: decode descriptor: %v", err)
	}

	resp, err := structpb.NewStruct(asMap)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "rmi: build response struct: %v", err)
	}
	return resp, nil
}

var introspectionServiceDesc = grpc.ServiceDesc{
	ServiceName: "rmi.IntrospectionService",
	HandlerType: (*introspectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "DescribeInterface",
			Handler:    describeInterfaceHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "introspection.proto",
}

type introspectionServiceServer interface {
	DescribeInterface(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func describeInterfaceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(introspectionServiceServer).DescribeInterface(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/rmi.IntrospectionService/DescribeInterface",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(introspectionServiceServer).DescribeInterface(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterIntrospectionServer registers s with the given gRPC server using
// the hand-built ServiceDesc above.
func RegisterIntrospectionServer(server *grpc.Server, s *IntrospectionServer) {
	server.RegisterService(&introspectionServiceDesc, s)
}
