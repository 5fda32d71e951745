package sealed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseWipesPlaintext(t *testing.T) {
	destination := mustKeyPair(t)
	sender := mustKeyPair(t)

	envelope, err := Seal(destination.Public, sender.Private, pair{Message: "to encrypt", Number: 9})
	require.NoError(t, err)

	opened, err := envelope.Open(destination.Private)
	require.NoError(t, err)

	// Grab the backing buffer before Close; the payload string must be
	// sitting in it in the clear
	buf := opened.plaintext
	require.True(t, bytes.Contains(buf, []byte("to encrypt")),
		"decrypted buffer should contain the payload bytes")

	require.NoError(t, opened.Close())

	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d of plaintext buffer is %#x after Close, want 0", i, b)
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	destination := mustKeyPair(t)
	sender := mustKeyPair(t)

	envelope, err := Seal(destination.Public, sender.Private, pair{Message: "once"})
	require.NoError(t, err)

	opened, err := envelope.Open(destination.Private)
	require.NoError(t, err)

	assert.NoError(t, opened.Close())
	assert.NoError(t, opened.Close())
	assert.NoError(t, opened.Close())
}

func TestDeserializeAfterCloseFails(t *testing.T) {
	destination := mustKeyPair(t)
	sender := mustKeyPair(t)

	envelope, err := Seal(destination.Public, sender.Private, pair{Message: "gone", Number: 6})
	require.NoError(t, err)

	opened, err := envelope.Open(destination.Private)
	require.NoError(t, err)
	require.NoError(t, opened.Close())

	_, err = opened.Deserialize()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDeserializeErrorLeavesBufferUsable(t *testing.T) {
	destination := mustKeyPair(t)
	sender := mustKeyPair(t)

	envelope, err := Seal(destination.Public, sender.Private, pair{Message: "shape", Number: 2})
	require.NoError(t, err)

	wire, err := envelope.MarshalBinary()
	require.NoError(t, err)

	var mistyped Sealed[uint32]
	require.NoError(t, mistyped.UnmarshalBinary(wire))

	opened, err := mistyped.Open(destination.Private)
	require.NoError(t, err)
	defer opened.Close()

	// A failed decode must not consume or corrupt the buffer
	_, err = opened.Deserialize()
	require.Error(t, err)

	// Re-typing through the buffer is not possible from outside, but
	// the buffer itself is intact for repeated attempts
	_, err2 := opened.Deserialize()
	assert.Equal(t, err.Error(), err2.Error())
}
