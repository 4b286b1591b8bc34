package debatev1

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

// CodecName is the content subtype both sides must use.
const CodecName = "json"

func init() {
	// Registration is process-wide; only calls that request the "json"
	// content subtype use it.
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

const (
	serviceName                                  = "debatebot.v1.DebateService"
	DebateService_Chat_FullMethodName            = "/" + serviceName + "/Chat"
	DebateService_GetConversation_FullMethodName = "/" + serviceName + "/GetConversation"
)

// DebateServiceClient is the client API for DebateService.
type DebateServiceClient interface {
	Chat(ctx context.Context, in *ChatRequest, opts ...grpc.CallOption) (*ChatResponse, error)
	GetConversation(ctx context.Context, in *GetConversationRequest, opts ...grpc.CallOption) (*Conversation, error)
}

type debateServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDebateServiceClient wraps a connection.
func NewDebateServiceClient(cc grpc.ClientConnInterface) DebateServiceClient {
	return &debateServiceClient{cc: cc}
}

func (c *debateServiceClient) Chat(ctx context.Context, in *ChatRequest, opts ...grpc.CallOption) (*ChatResponse, error) {
	out := new(ChatResponse)
	opts = append(opts, grpc.CallContentSubtype(CodecName))
	if err := c.cc.Invoke(ctx, DebateService_Chat_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *debateServiceClient) GetConversation(ctx context.Context, in *GetConversationRequest, opts ...grpc.CallOption) (*Conversation, error) {
	out := new(Conversation)
	opts = append(opts, grpc.CallContentSubtype(CodecName))
	if err := c.cc.Invoke(ctx, DebateService_GetConversation_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DebateServiceServer is the server API for DebateService.
type DebateServiceServer interface {
	Chat(context.Context, *ChatRequest) (*ChatResponse, error)
	GetConversation(context.Context, *GetConversationRequest) (*Conversation, error)
	mustEmbedUnimplementedDebateServiceServer()
}

// UnimplementedDebateServiceServer provides default implementations.
type UnimplementedDebateServiceServer struct{}

func (UnimplementedDebateServiceServer) Chat(context.Context, *ChatRequest) (*ChatResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Chat not implemented")
}
func (UnimplementedDebateServiceServer) GetConversation(context.Context, *GetConversationRequest) (*Conversation, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetConversation not implemented")
}
func (UnimplementedDebateServiceServer) mustEmbedUnimplementedDebateServiceServer() {}

// RegisterDebateServiceServer registers srv with s.
func RegisterDebateServiceServer(s grpc.ServiceRegistrar, srv DebateServiceServer) {
	s.RegisterService(&DebateService_ServiceDesc, srv)
}

func _DebateService_Chat_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChatRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DebateServiceServer).Chat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DebateService_Chat_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DebateServiceServer).Chat(ctx, req.(*ChatRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DebateService_GetConversation_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetConversationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DebateServiceServer).GetConversation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DebateService_GetConversation_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DebateServiceServer).GetConversation(ctx, req.(*GetConversationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// DebateService_ServiceDesc is the grpc.ServiceDesc for DebateService.
var DebateService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*DebateServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Chat", Handler: _DebateService_Chat_Handler},
		{MethodName: "GetConversation", Handler: _DebateService_GetConversation_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "debatebot/v1/debate.proto",
}
