package qrtoken

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPayload(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		first := HashPayload(`{"token_id":"abc"}`)
		second := HashPayload(`{"token_id":"abc"}`)
		assert.Equal(t, first, second)
	})

	t.Run("DistinctPayloadsDistinctHashes", func(t *testing.T) {
		assert.NotEqual(t, HashPayload("a"), HashPayload("b"))
	})

	t.Run("MatchesSHA256Hex", func(t *testing.T) {
		sum := sha256.Sum256([]byte("payload"))
		assert.Equal(t, hex.EncodeToString(sum[:]), HashPayload("payload"))
	})
}

func TestNewToken(t *testing.T) {
	issuedBy := uuid.New()
	token := NewToken(`{"token_id":"t1"}`, "laptop", "120.00", &issuedBy)

	require.NotNil(t, token)
	assert.NotEqual(t, uuid.Nil, token.TokenID)
	assert.Equal(t, HashPayload(`{"token_id":"t1"}`), token.Hash)
	assert.Equal(t, "laptop", token.Category)
	assert.Equal(t, "120.00", token.ValuePHP)
	assert.Equal(t, `{"token_id":"t1"}`, token.QRData)
	assert.False(t, token.Used)
	assert.Nil(t, token.UsedAt)
	assert.Nil(t, token.UsedBy)
	require.NotNil(t, token.IssuedBy)
	assert.Equal(t, issuedBy, *token.IssuedBy)
}
