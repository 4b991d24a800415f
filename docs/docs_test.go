package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	SwaggerInfo.Host = "localhost:8080"
	SwaggerInfo.Schemes = []string{"http"}

	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "localhost:8080", parsed["host"])

	paths, ok := parsed["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/customers")
	assert.Contains(t, paths, "/customers/{id}")
}
