package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "petadoption.PetAdoptionService"

// PetAdoptionServer is the server API of the pet adoption service.
type PetAdoptionServer interface {
	GetPets(context.Context, *GetPetsRequest) (*GetPetsResponse, error)
	GetPet(context.Context, *GetPetRequest) (*PetResponse, error)
	CreatePet(context.Context, *CreatePetRequest) (*PetResponse, error)
	UpdatePet(context.Context, *UpdatePetRequest) (*PetResponse, error)
	DeletePet(context.Context, *DeletePetRequest) (*DeletePetResponse, error)
	RequestAdoption(context.Context, *RequestAdoptionRequest) (*AdoptionResponse, error)
	RemoveAdoption(context.Context, *AdoptionRequest) (*RemoveAdoptionResponse, error)
	GetAdoption(context.Context, *AdoptionRequest) (*AdoptionResponse, error)
	ListAdoptions(context.Context, *ListAdoptionsRequest) (*ListAdoptionsResponse, error)
}

// ServiceDesc describes PetAdoptionService for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PetAdoptionServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetPets", PetAdoptionServer.GetPets),
		unary("GetPet", PetAdoptionServer.GetPet),
		unary("CreatePet", PetAdoptionServer.CreatePet),
		unary("UpdatePet", PetAdoptionServer.UpdatePet),
		unary("DeletePet", PetAdoptionServer.DeletePet),
		unary("RequestAdoption", PetAdoptionServer.RequestAdoption),
		unary("RemoveAdoption", PetAdoptionServer.RemoveAdoption),
		unary("GetAdoption", PetAdoptionServer.GetAdoption),
		unary("ListAdoptions", PetAdoptionServer.ListAdoptions),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "petadoption.proto",
}

// RegisterPetAdoptionServer attaches srv to s.
func RegisterPetAdoptionServer(s grpc.ServiceRegistrar, srv PetAdoptionServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary[Req, Resp any](method string, call func(PetAdoptionServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PetAdoptionServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PetAdoptionServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
