package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de swagger lee docs/swagger.json al arrancar; si el archivo
// falta o no parsea, el servidor no levanta. Validamos el artefacto commiteado.
func TestSwaggerJSON_ExisteYParsea(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "docs", "swagger.json"))
	require.NoError(t, err, "docs/swagger.json debe estar commiteado")

	var doc struct {
		Swagger  string                 `json:"swagger"`
		BasePath string                 `json:"basePath"`
		Paths    map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api", doc.BasePath)

	// Las rutas centrales del motor deben estar documentadas.
	for _, path := range []string{
		"/orders",
		"/orders/{id}/status",
		"/cart/items",
		"/inventory/product/{productId}/adjust",
		"/inventory/reservations",
		"/sales",
	} {
		assert.Contains(t, doc.Paths, path, "ruta sin documentar")
	}
}
