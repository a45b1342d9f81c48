package request

import (
	"testing"

	fnv1 "github.com/crossplane/function-sdk-go/proto/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestGetInput(t *testing.T) {
	req := &fnv1.RunFunctionRequest{
		Input: mustStruct(t, map[string]any{"example": "value"}),
	}
	assert.Equal(t, map[string]any{"example": "value"}, GetInput(req))

	// No input yields an empty map, not nil.
	assert.Empty(t, GetInput(&fnv1.RunFunctionRequest{}))
}

func TestGetRequiredResources(t *testing.T) {
	req := &fnv1.RunFunctionRequest{
		RequiredResources: map[string]*fnv1.Resources{
			"buckets": {
				Items: []*fnv1.Resource{
					{Resource: mustStruct(t, map[string]any{"name": "a"})},
					{Resource: mustStruct(t, map[string]any{"name": "b"})},
				},
			},
		},
	}

	got := GetRequiredResources(req, "buckets")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0]["name"])
	assert.Equal(t, "b", got[1]["name"])

	assert.Nil(t, GetRequiredResources(req, "absent"))
	assert.Equal(t, map[string]any{"name": "a"}, GetRequiredResource(req, "buckets"))
	assert.Nil(t, GetRequiredResource(req, "absent"))
}

func TestGetWatchedResource(t *testing.T) {
	watched := mustStruct(t, map[string]any{"kind": "ConfigMap"})
	req := &fnv1.RunFunctionRequest{
		RequiredResources: map[string]*fnv1.Resources{
			WatchedResourceName: {Items: []*fnv1.Resource{{Resource: watched}}},
		},
	}

	assert.Equal(t, map[string]any{"kind": "ConfigMap"}, GetWatchedResource(req))
	assert.Nil(t, GetWatchedResource(&fnv1.RunFunctionRequest{}))
}

func TestGetCredentials(t *testing.T) {
	req := &fnv1.RunFunctionRequest{
		Credentials: map[string]*fnv1.Credentials{
			"db": {
				Source: &fnv1.Credentials_CredentialData{
					CredentialData: &fnv1.CredentialData{
						Data: map[string][]byte{"password": []byte("secret")},
					},
				},
			},
		},
	}

	got := GetCredentials(req, "db")
	assert.Equal(t, "credential_data", got.Type)
	assert.Equal(t, map[string]string{"password": "secret"}, got.Data)

	// Missing credentials come back as an empty "data" credential rather
	// than an error.
	empty := GetCredentials(req, "absent")
	assert.Equal(t, "data", empty.Type)
	assert.Empty(t, empty.Data)
}
