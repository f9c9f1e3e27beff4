package validatex

import (
	"testing"

	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Email: "a@b.co", Name: "Al", Color: "#fff"}))

	err := Struct(sample{Email: "nope", Name: "A", Color: "blue"})
	require.Error(t, err)

	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, errx.TypeValidation, e.Type)
	assert.Equal(t, "email", e.Details["email"])
	assert.Equal(t, "min=2", e.Details["name"])
	assert.Equal(t, "hexcolor", e.Details["color"])
}
