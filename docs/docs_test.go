package docs

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type swaggerDoc struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

type operation struct {
	Responses map[string]struct {
		Schema struct {
			Ref string `json:"$ref"`
		} `json:"schema"`
	} `json:"responses"`
}

func readDoc(t *testing.T) (string, swaggerDoc) {
	t.Helper()
	raw := SwaggerInfo.ReadDoc()
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return raw, doc
}

func responseRef(t *testing.T, doc swaggerDoc, path, method, status string) string {
	t.Helper()
	var op operation
	require.NoError(t, json.Unmarshal(doc.Paths[path][method], &op))
	return op.Responses[status].Schema.Ref
}

func TestDoc_RespuestasSinEnvelope(t *testing.T) {
	_, doc := readDoc(t)
	assert.Equal(t, "#/definitions/dto.LoginResponse", responseRef(t, doc, "/api/auth/register", "post", "201"))
	assert.Equal(t, "#/definitions/dto.LoginResponse", responseRef(t, doc, "/api/auth/login", "post", "200"))
	assert.Equal(t, "#/definitions/dto.CreateUserResponse", responseRef(t, doc, "/api/users", "post", "201"))
}

func TestDoc_ReferenciasDefinidas(t *testing.T) {
	raw, doc := readDoc(t)
	for _, m := range regexp.MustCompile(`#/definitions/([\w.]+)`).FindAllStringSubmatch(raw, -1) {
		assert.Contains(t, doc.Definitions, m[1])
	}
}
