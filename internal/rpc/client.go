package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls PetAdoptionService and turns status errors back into failures.
type Client struct {
	conn grpc.ClientConnInterface
}

// Dial opens a plaintext connection negotiating the JSON codec.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pet adoption service: %w", err)
	}
	return conn, nil
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any) (*Resp, error) {
	out := new(Resp)
	if err := c.conn.Invoke(ctx, fullMethod(method), in, out, grpc.CallContentSubtype(CodecName)); err != nil {
		return nil, fromStatus(err)
	}
	return out, nil
}

func (c *Client) GetPets(ctx context.Context, in *GetPetsRequest) (*GetPetsResponse, error) {
	return invoke[GetPetsResponse](ctx, c, "GetPets", in)
}

func (c *Client) GetPet(ctx context.Context, in *GetPetRequest) (*PetResponse, error) {
	return invoke[PetResponse](ctx, c, "GetPet", in)
}

func (c *Client) CreatePet(ctx context.Context, in *CreatePetRequest) (*PetResponse, error) {
	return invoke[PetResponse](ctx, c, "CreatePet", in)
}

func (c *Client) UpdatePet(ctx context.Context, in *UpdatePetRequest) (*PetResponse, error) {
	return invoke[PetResponse](ctx, c, "UpdatePet", in)
}

func (c *Client) DeletePet(ctx context.Context, in *DeletePetRequest) (*DeletePetResponse, error) {
	return invoke[DeletePetResponse](ctx, c, "DeletePet", in)
}

func (c *Client) RequestAdoption(ctx context.Context, in *RequestAdoptionRequest) (*AdoptionResponse, error) {
	return invoke[AdoptionResponse](ctx, c, "RequestAdoption", in)
}

func (c *Client) RemoveAdoption(ctx context.Context, in *AdoptionRequest) (*RemoveAdoptionResponse, error) {
	return invoke[RemoveAdoptionResponse](ctx, c, "RemoveAdoption", in)
}

func (c *Client) GetAdoption(ctx context.Context, in *AdoptionRequest) (*AdoptionResponse, error) {
	return invoke[AdoptionResponse](ctx, c, "GetAdoption", in)
}

func (c *Client) ListAdoptions(ctx context.Context, in *ListAdoptionsRequest) (*ListAdoptionsResponse, error) {
	return invoke[ListAdoptionsResponse](ctx, c, "ListAdoptions", in)
}

var _ PetAdoptionServer = (*Client)(nil)
