package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"blogging/internal/core"
	cErr "blogging/internal/pkg/error"
	"blogging/internal/pkg/response"
	"blogging/internal/telemetry"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// 解壓後 body 上限
const maxDecodedBody = 10 << 20

var (
	errUnsupportedEncoding = errors.New("unsupported content encoding")
	errBodyTooLarge        = errors.New("decoded body too large")
)

type Decompress struct {
	trace *telemetry.Trace
}

func NewDecompress(trace *telemetry.Trace) *Decompress {
	return &Decompress{trace: trace}
}

// Handler 先拒絕讀取失敗的 body，再依 Content-Encoding 解壓，下游 handler 只看到明文
func (m *Decompress) Handler() gin.HandlerFunc {
	type decompressMeta struct {
		Encoding string `trace:"http.request.content_encoding"`
		RawBytes int    `trace:"http.request.body.raw_bytes"`
		Bytes    int    `trace:"http.request.body.decoded_bytes"`
	}

	return func(c *gin.Context) {
		if readErr, exists := c.Get(core.ContextRequestBodyErr); exists {
			desc := "failed to read request body"
			var tooLarge *http.MaxBytesError
			if err, ok := readErr.(error); ok && errors.As(err, &tooLarge) {
				desc = fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
			}
			response.AbortWithError(c, cErr.ValidateErr(desc))
			return
		}

		encoding := strings.ToLower(strings.TrimSpace(c.GetHeader("Content-Encoding")))
		if encoding == "" || encoding == "identity" || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		_, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanDecompressMiddleware))
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			end(err)
			response.AbortWithError(c, cErr.ValidateErr("failed to read request body"))
			return
		}
		decoded, err := decodeContent(encoding, raw)
		if err != nil {
			end(err)
			response.AbortWithError(c, cErr.BadRequestHeaders(fmt.Sprintf("cannot decode %s body: %v", encoding, err)))
			return
		}
		m.trace.ApplyTraceAttributes(span, decompressMeta{Encoding: encoding, RawBytes: len(raw), Bytes: len(decoded)})
		end(nil)

		c.Request.Body = io.NopCloser(bytes.NewReader(decoded))
		c.Request.ContentLength = int64(len(decoded))
		c.Request.Header.Set("Content-Length", strconv.Itoa(len(decoded)))
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}

// decodeContent 支援 gzip、deflate、br、zstd；多層編碼依反序解開
func decodeContent(encoding string, raw []byte) ([]byte, error) {
	layers := strings.Split(encoding, ",")
	out := raw
	for i := len(layers) - 1; i >= 0; i-- {
		var err error
		switch strings.ToLower(strings.TrimSpace(layers[i])) {
		case "", "identity":
			continue
		case "gzip", "x-gzip":
			out, err = readLimited(func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }, out)
		case "deflate":
			out, err = readLimited(zlib.NewReader, out)
		case "br":
			out, err = readLimited(func(r io.Reader) (io.ReadCloser, error) {
				return io.NopCloser(brotli.NewReader(r)), nil
			}, out)
		case "zstd":
			out, err = readLimited(func(r io.Reader) (io.ReadCloser, error) {
				dec, err := zstd.NewReader(r, zstd.WithDecoderMaxMemory(maxDecodedBody))
				if err != nil {
					return nil, err
				}
				return dec.IOReadCloser(), nil
			}, out)
		default:
			return nil, fmt.Errorf("%w: %s", errUnsupportedEncoding, layers[i])
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readLimited(open func(io.Reader) (io.ReadCloser, error), b []byte) ([]byte, error) {
	r, err := open(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	out, err := io.ReadAll(io.LimitReader(r, maxDecodedBody+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxDecodedBody {
		return nil, errBodyTooLarge
	}
	return out, nil
}
