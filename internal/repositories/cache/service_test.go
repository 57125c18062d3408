package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	s := NewCacheService(nil, time.Hour)

	assert.Equal(t, "user:id:42", s.GenerateKey("user", "id", uint(42)))
	assert.Equal(t, "user:email:a@b.com", s.GenerateKey("user", "email", "a@b.com"))
}

func TestDirectoryKey_PerViewerPerPage(t *testing.T) {
	s := NewCacheService(nil, time.Hour)

	k1 := s.directoryKey(7, 1)
	k2 := s.directoryKey(7, 2)
	k3 := s.directoryKey(8, 1)

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	// All directory keys share the prefix the invalidation pattern sweeps.
	assert.Contains(t, k1, "directory:")
	assert.Contains(t, k3, "directory:")
}
