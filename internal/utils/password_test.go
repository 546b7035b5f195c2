package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, CheckPassword("secret123", hash))
	assert.Error(t, CheckPassword("secret124", hash))
	assert.Error(t, CheckPassword("", hash))
}

func TestHashPasswordCost(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	// 成本因子固定为12轮
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)

	// bcrypt带随机盐，两次哈希结果不同但都能校验通过
	assert.NotEqual(t, h1, h2)
	assert.NoError(t, CheckPassword("secret123", h1))
	assert.NoError(t, CheckPassword("secret123", h2))
}
