package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-api/pkg/jwt"
)

func TestGenerateYParse(t *testing.T) {
	tok, err := jwt.Generate("secreto", "cliente-1", "tienda-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	customerID, err := jwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "cliente-1", customerID)
}

func TestParse_SecretoIncorrecto(t *testing.T) {
	tok, err := jwt.Generate("secreto", "cliente-1", "tienda-api", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate("secreto", "cliente-1", "tienda-api", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretoVacio(t *testing.T) {
	_, err := jwt.Generate("", "cliente-1", "tienda-api", 60)
	assert.Error(t, err)
}
