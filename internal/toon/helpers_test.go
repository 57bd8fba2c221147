package toon

import (
	"testing"

	"github.com/mcncl/gotoon/internal/models"
	"github.com/stretchr/testify/assert"
)

// obj builds an object from alternating keys and values.
func obj(pairs ...any) models.Value {
	o := models.NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(models.Value))
	}
	return models.ObjectValue(o)
}

func arr(items ...models.Value) models.Value { return models.Array(items...) }

func str(s string) models.Value { return models.String(s) }

func num(i int64) models.Value { return models.Int(i) }

func assertValue(t *testing.T, want, got models.Value) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "values differ\nwant: %s\n got: %s", want, got)
}
