package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringField(t *testing.T) {
	fields := map[string]any{"model": "text-embedding-3-small", "empty": "", "num": 3}

	assert.Equal(t, "text-embedding-3-small", StringField(fields, "model", "default"))
	assert.Equal(t, "default", StringField(fields, "missing", "default"))
	assert.Equal(t, "default", StringField(fields, "empty", "default"))
	assert.Equal(t, "default", StringField(fields, "num", "default"))
}

func TestIntField(t *testing.T) {
	fields := map[string]any{
		"int":     8,
		"int64":   int64(16),
		"float":   float64(32), // JSON numbers decode to float64
		"string":  "64",
		"garbage": "not a number",
	}

	assert.Equal(t, 8, IntField(fields, "int", 1))
	assert.Equal(t, 16, IntField(fields, "int64", 1))
	assert.Equal(t, 32, IntField(fields, "float", 1))
	assert.Equal(t, 64, IntField(fields, "string", 1))
	assert.Equal(t, 1, IntField(fields, "garbage", 1))
	assert.Equal(t, 1, IntField(fields, "missing", 1))
}
