package stdlib

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// cryptoFns implements the `mem`-adjacent hashing/encryption group,
// grounded on kristofer/smog/pkg/vm/primitives.go's AES/SHA/MD5/base64
// helpers verbatim in algorithm, rehosted onto value.NativeFn.
func cryptoFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"crypto.aesEncrypt":    cryptoAESEncrypt,
		"crypto.aesDecrypt":    cryptoAESDecrypt,
		"crypto.aesGenerateKey": cryptoAESGenerateKey,
		"crypto.sha256":        cryptoSHA256,
		"crypto.sha512":        cryptoSHA512,
		"crypto.md5":           cryptoMD5,
		"crypto.base64Encode":  cryptoBase64Encode,
		"crypto.base64Decode":  cryptoBase64Decode,
	}
}

func cryptoAESEncrypt(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "crypto.aesEncrypt")
	if err != nil {
		return value.Value{}, false, err
	}
	key, err := argString(args, 1, "crypto.aesEncrypt")
	if err != nil {
		return value.Value{}, false, err
	}
	keyBytes := []byte(key)
	if len(keyBytes) != 32 {
		return value.Value{}, false, fmt.Errorf("crypto.aesEncrypt: key must be 32 bytes, got %d", len(keyBytes))
	}
	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("crypto.aesEncrypt: %v", err)
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return value.Value{}, false, fmt.Errorf("crypto.aesEncrypt: %v", err)
	}
	plaintext := []byte(data)
	padding := aes.BlockSize - (len(plaintext) % aes.BlockSize)
	padded := make([]byte, len(plaintext)+padding)
	copy(padded, plaintext)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return str(base64.StdEncoding.EncodeToString(append(iv, ciphertext...))), true, nil
}

func cryptoAESDecrypt(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "crypto.aesDecrypt")
	if err != nil {
		return value.Value{}, false, err
	}
	key, err := argString(args, 1, "crypto.aesDecrypt")
	if err != nil {
		return value.Value{}, false, err
	}
	keyBytes := []byte(key)
	if len(keyBytes) != 32 {
		return value.Value{}, false, fmt.Errorf("crypto.aesDecrypt: key must be 32 bytes, got %d", len(keyBytes))
	}
	encrypted, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("crypto.aesDecrypt: %v", err)
	}
	if len(encrypted) < aes.BlockSize {
		return value.Value{}, false, fmt.Errorf("crypto.aesDecrypt: ciphertext too short")
	}
	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("crypto.aesDecrypt: %v", err)
	}
	iv, ciphertext := encrypted[:aes.BlockSize], encrypted[aes.BlockSize:]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	padding := int(plaintext[len(plaintext)-1])
	if padding > len(plaintext) || padding > aes.BlockSize {
		return value.Value{}, false, fmt.Errorf("crypto.aesDecrypt: invalid padding")
	}
	return str(string(plaintext[:len(plaintext)-padding])), true, nil
}

// cryptoAESGenerateKey returns a random key as a base64 string: 24 random
// bytes encode to exactly 32 characters, the key length aesEncrypt and
// aesDecrypt accept.
func cryptoAESGenerateKey(args []value.Value, _ token.Token) (value.Value, bool, error) {
	key := make([]byte, 24)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return value.Value{}, false, fmt.Errorf("crypto.aesGenerateKey: %v", err)
	}
	return str(base64.StdEncoding.EncodeToString(key)), true, nil
}

func cryptoSHA256(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "crypto.sha256")
	if err != nil {
		return value.Value{}, false, err
	}
	sum := sha256.Sum256([]byte(data))
	return str(fmt.Sprintf("%x", sum)), true, nil
}

func cryptoSHA512(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "crypto.sha512")
	if err != nil {
		return value.Value{}, false, err
	}
	sum := sha512.Sum512([]byte(data))
	return str(fmt.Sprintf("%x", sum)), true, nil
}

func cryptoMD5(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "crypto.md5")
	if err != nil {
		return value.Value{}, false, err
	}
	sum := md5.Sum([]byte(data))
	return str(fmt.Sprintf("%x", sum)), true, nil
}

func cryptoBase64Encode(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "crypto.base64Encode")
	if err != nil {
		return value.Value{}, false, err
	}
	return str(base64.StdEncoding.EncodeToString([]byte(data))), true, nil
}

func cryptoBase64Decode(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "crypto.base64Decode")
	if err != nil {
		return value.Value{}, false, err
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("crypto.base64Decode: %v", err)
	}
	return str(string(decoded)), true, nil
}
