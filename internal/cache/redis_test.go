package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache_Unreachable(t *testing.T) {
	c, err := NewRedisCache("redis://127.0.0.1:1/0")

	assert.Error(t, err)
	assert.Nil(t, c)
}
