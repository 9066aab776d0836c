package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func TestCryptoAES_EncryptDecryptRoundTrips(t *testing.T) {
	key, _, err := cryptoAESGenerateKey(nil, token.Token{})
	require.NoError(t, err)
	keyStr := key.Object.(*value.StringObject).String()

	encrypted, ok, err := cryptoAESEncrypt([]value.Value{str("secret message"), str(keyStr)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)

	decrypted, ok, err := cryptoAESDecrypt([]value.Value{encrypted, str(keyStr)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "secret message", decrypted.Object.(*value.StringObject).String())
}

func TestCryptoAESEncrypt_RejectsWrongKeyLength(t *testing.T) {
	_, _, err := cryptoAESEncrypt([]value.Value{str("data"), str("tooshort")}, token.Token{})
	assert.Error(t, err)
}

func TestCryptoHashes_ProduceExpectedHexDigests(t *testing.T) {
	sum, _, err := cryptoSHA256([]value.Value{str("abc")}, token.Token{})
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum.Object.(*value.StringObject).String())

	md5sum, _, err := cryptoMD5([]value.Value{str("abc")}, token.Token{})
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", md5sum.Object.(*value.StringObject).String())
}

func TestCryptoBase64_RoundTrips(t *testing.T) {
	encoded, _, err := cryptoBase64Encode([]value.Value{str("hello")}, token.Token{})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", encoded.Object.(*value.StringObject).String())

	decoded, _, err := cryptoBase64Decode([]value.Value{encoded}, token.Token{})
	require.NoError(t, err)
	assert.Equal(t, "hello", decoded.Object.(*value.StringObject).String())
}
