package stdlib

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// compressFns implements gzip compression, grounded on
// kristofer/smog/pkg/vm/primitives.go's gzipCompress/gzipDecompress.
// The teacher's ZIP helpers are dropped: archive/zip's Writer needs a
// named entry per file and an io.ReaderAt for decompression, machinery
// that only pays for itself with multi-entry archives — a single
// in-memory string has no second entry to name, so gzip alone covers the
// "compress this buffer" use case without the archive-format overhead.
func compressFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"compress.gzip":   compressGzip,
		"compress.gunzip": compressGunzip,
	}
}

func compressGzip(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "compress.gzip")
	if err != nil {
		return value.Value{}, false, err
	}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(data)); err != nil {
		return value.Value{}, false, fmt.Errorf("compress.gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		return value.Value{}, false, fmt.Errorf("compress.gzip: %v", err)
	}
	return str(base64.StdEncoding.EncodeToString(buf.Bytes())), true, nil
}

func compressGunzip(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "compress.gunzip")
	if err != nil {
		return value.Value{}, false, err
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("compress.gunzip: %v", err)
	}
	r, err := gzip.NewReader(bytes.NewReader(decoded))
	if err != nil {
		return value.Value{}, false, fmt.Errorf("compress.gunzip: %v", err)
	}
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("compress.gunzip: %v", err)
	}
	return str(string(content)), true, nil
}
