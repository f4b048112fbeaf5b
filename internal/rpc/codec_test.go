package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodecIsRegisteredForContentSubtype(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	require.NotNil(t, codec)
	assert.Equal(t, "json", codec.Name())

	payload, err := codec.Marshal(GetPetRequest{ID: "P1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"P1"}`, string(payload))

	var decoded GetPetRequest
	require.NoError(t, codec.Unmarshal(payload, &decoded))
	assert.Equal(t, "P1", decoded.ID)
}
