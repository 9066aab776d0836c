package stdlib

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// ioFns implements the `io` group: file access and HTTP requests,
// generalized from kristofer/smog/pkg/vm/primitives.go's fileRead/
// fileWrite/fileExists/fileDelete/httpGet/httpPost into the
// value.NativeFn ABI.
func ioFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"io.fileRead":   ioFileRead,
		"io.fileWrite":  ioFileWrite,
		"io.fileExists": ioFileExists,
		"io.fileDelete": ioFileDelete,
		"io.httpGet":    ioHTTPGet,
		"io.httpPost":   ioHTTPPost,
	}
}

func ioFileRead(args []value.Value, _ token.Token) (value.Value, bool, error) {
	path, err := argString(args, 0, "io.fileRead")
	if err != nil {
		return value.Value{}, false, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("io.fileRead: %v", err)
	}
	return str(string(content)), true, nil
}

func ioFileWrite(args []value.Value, _ token.Token) (value.Value, bool, error) {
	path, err := argString(args, 0, "io.fileWrite")
	if err != nil {
		return value.Value{}, false, err
	}
	content, err := argString(args, 1, "io.fileWrite")
	if err != nil {
		return value.Value{}, false, err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return value.Value{}, false, fmt.Errorf("io.fileWrite: %v", err)
	}
	return value.Value{}, false, nil
}

func ioFileExists(args []value.Value, _ token.Token) (value.Value, bool, error) {
	path, err := argString(args, 0, "io.fileExists")
	if err != nil {
		return value.Value{}, false, err
	}
	_, statErr := os.Stat(path)
	return value.NewBool(statErr == nil), true, nil
}

func ioFileDelete(args []value.Value, _ token.Token) (value.Value, bool, error) {
	path, err := argString(args, 0, "io.fileDelete")
	if err != nil {
		return value.Value{}, false, err
	}
	if err := os.Remove(path); err != nil {
		return value.Value{}, false, fmt.Errorf("io.fileDelete: %v", err)
	}
	return value.Value{}, false, nil
}

func ioHTTPGet(args []value.Value, _ token.Token) (value.Value, bool, error) {
	url, err := argString(args, 0, "io.httpGet")
	if err != nil {
		return value.Value{}, false, err
	}
	resp, err := http.Get(url)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("io.httpGet: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("io.httpGet: %v", err)
	}
	return str(string(body)), true, nil
}

func ioHTTPPost(args []value.Value, _ token.Token) (value.Value, bool, error) {
	url, err := argString(args, 0, "io.httpPost")
	if err != nil {
		return value.Value{}, false, err
	}
	body, err := argString(args, 1, "io.httpPost")
	if err != nil {
		return value.Value{}, false, err
	}
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		return value.Value{}, false, fmt.Errorf("io.httpPost: %v", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("io.httpPost: %v", err)
	}
	return str(string(respBody)), true, nil
}
