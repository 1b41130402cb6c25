package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "rpgcompanion.advancement.v1alpha1.AdvancementService"

// Method names
const (
	MethodEvaluateDice         = "EvaluateDice"
	MethodCalculateAdvancement = "CalculateAdvancement"
	MethodBeginAdvancement     = "BeginAdvancement"
	MethodGetAdvancement       = "GetAdvancement"
	MethodRollTalent           = "RollTalent"
	MethodRollBoon             = "RollBoon"
	MethodResolveChoice        = "ResolveChoice"
	MethodRollHitPoints        = "RollHitPoints"
	MethodRollGold             = "RollGold"
	MethodUpdateSelections     = "UpdateSelections"
	MethodValidateAdvancement  = "ValidateAdvancement"
	MethodFinalizeAdvancement  = "FinalizeAdvancement"
	MethodListSpells           = "ListSpells"
)

// FullMethod returns the invoke path of a method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// AdvancementServiceServer is the server API. Requests and responses are
// google.protobuf.Struct documents.
type AdvancementServiceServer interface {
	EvaluateDice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CalculateAdvancement(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BeginAdvancement(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAdvancement(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollTalent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollBoon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveChoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollHitPoints(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollGold(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateSelections(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateAdvancement(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FinalizeAdvancement(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSpells(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv AdvancementServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func methodHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(AdvancementServiceServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the advancement service for grpc.Server registration
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdvancementServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodHandler(MethodEvaluateDice, AdvancementServiceServer.EvaluateDice),
		methodHandler(MethodCalculateAdvancement, AdvancementServiceServer.CalculateAdvancement),
		methodHandler(MethodBeginAdvancement, AdvancementServiceServer.BeginAdvancement),
		methodHandler(MethodGetAdvancement, AdvancementServiceServer.GetAdvancement),
		methodHandler(MethodRollTalent, AdvancementServiceServer.RollTalent),
		methodHandler(MethodRollBoon, AdvancementServiceServer.RollBoon),
		methodHandler(MethodResolveChoice, AdvancementServiceServer.ResolveChoice),
		methodHandler(MethodRollHitPoints, AdvancementServiceServer.RollHitPoints),
		methodHandler(MethodRollGold, AdvancementServiceServer.RollGold),
		methodHandler(MethodUpdateSelections, AdvancementServiceServer.UpdateSelections),
		methodHandler(MethodValidateAdvancement, AdvancementServiceServer.ValidateAdvancement),
		methodHandler(MethodFinalizeAdvancement, AdvancementServiceServer.FinalizeAdvancement),
		methodHandler(MethodListSpells, AdvancementServiceServer.ListSpells),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgcompanion/advancement/v1alpha1/advancement.proto",
}

// RegisterAdvancementServiceServer registers the service implementation
func RegisterAdvancementServiceServer(s grpc.ServiceRegistrar, srv AdvancementServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
