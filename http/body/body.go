package body

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/cloud-cli/gw"
)

const (
	// DefaultLimit caps request bodies at 100kb.
	DefaultLimit int64 = 100 << 10

	// DefaultParameterLimit caps urlencoded bodies at 1000 parameters.
	DefaultParameterLimit = 1000

	defaultCharset = "utf-8"
)

var defaultTypes = map[gw.BodyMode][]string{
	gw.BodyJSON:       {"application/json"},
	gw.BodyText:       {"text/plain"},
	gw.BodyURLEncoded: {"application/x-www-form-urlencoded"},
	gw.BodyRaw:        {"application/octet-stream"},
}

// A Decoder decodes request bodies for each gw.BodyMode.
//
// The zero value is ready to use.
type Decoder struct{}

// Decode reads r.Body according to mode and opts.
//
// Decode leaves the request alone, reporting false,
// when the request has no body or its Content-Type does not match opts.Types.
// Otherwise, Decode consumes r.Body, reporting true.
//
// Depending on mode, the decoded value is:
//   - json: the result of decoding into an any
//   - text: a string
//   - urlencoded: url.Values
//   - raw: []byte
func (Decoder) Decode(mode gw.BodyMode, opts gw.BodyOptions, r *http.Request) (any, bool, error) {
	if !hasBody(r) {
		return nil, false, nil
	}

	mediaType, params, err := contentType(r)
	if err != nil {
		return nil, false, nil
	}

	types := opts.Types
	if len(types) == 0 {
		types = defaultTypes[mode]
	}

	if !matchesAny(mediaType, types) {
		return nil, false, nil
	}

	b, err := read(r, opts.Limit)
	if err != nil {
		return nil, true, err
	}

	var val any
	switch mode {
	case gw.BodyJSON:
		val, err = decodeJSON(b, params["charset"], opts.Strict)
	case gw.BodyText:
		val, err = decodeText(b, params["charset"], opts.DefaultCharset)
	case gw.BodyURLEncoded:
		val, err = decodeURLEncoded(b, params["charset"], opts.ParameterLimit)
	case gw.BodyRaw:
		val = b
	default:
		err = fmt.Errorf("%w: unknown body mode %q", gw.ErrNotValid, mode)
	}

	if err != nil {
		return nil, true, err
	}

	return val, true, nil
}

// hasBody asserts whether the request announces a body,
// either through Content-Length or Transfer-Encoding.
// An unknown Content-Length, e.g., an HTTP/2 request without one, announces a body.
func hasBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}

	return r.ContentLength != 0 || len(r.TransferEncoding) > 0
}

// contentType parses the request's Content-Type into a lowercased media type and its params.
func contentType(r *http.Request) (string, map[string]string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", nil, fmt.Errorf("%w: no Content-Type", gw.ErrBadFormat)
	}

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", gw.ErrBadFormat, err)
	}

	return mediaType, params, nil
}

// matchesAny asserts whether mediaType matches one of types.
// Types may use wildcards, e.g., "text/*" or "*/*",
// or name only a suffix, e.g., "+json" or "json".
func matchesAny(mediaType string, types []string) bool {
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		switch {
		case t == "":
			continue
		case strings.HasPrefix(t, "+"):
			if strings.HasSuffix(mediaType, t) {
				return true
			}
		case !strings.Contains(t, "/"):
			if strings.HasSuffix(mediaType, "/"+t) || strings.HasSuffix(mediaType, "+"+t) {
				return true
			}
		default:
			if ok, err := path.Match(t, mediaType); err == nil && ok {
				return true
			}
		}
	}

	return false
}

// read consumes at most limit bytes of r.Body.
func read(r *http.Request, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if r.ContentLength > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", gw.ErrBodyTooLarge, r.ContentLength, limit)
	}

	defer r.Body.Close()

	b, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed reading request body: %s", gw.ErrBadFormat, err)
	}

	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", gw.ErrBodyTooLarge, limit)
	}

	return b, nil
}

func decodeJSON(b []byte, charset string, strict bool) (any, error) {
	if err := checkUTF8(charset, defaultCharset); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	if strict && trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: strict JSON only accepts objects and arrays", gw.ErrBadFormat)
	}

	var val any
	if err := json.Unmarshal(trimmed, &val); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: invalid JSON at offset %d: %s", gw.ErrBadFormat, syntaxErr.Offset, err)
		}

		return nil, fmt.Errorf("%w: %s", gw.ErrBadFormat, err)
	}

	return val, nil
}

func decodeText(b []byte, charset, def string) (string, error) {
	if def == "" {
		def = defaultCharset
	}

	if err := checkUTF8(charset, def); err != nil {
		return "", err
	}

	return string(b), nil
}

func decodeURLEncoded(b []byte, charset string, limit int) (url.Values, error) {
	if err := checkUTF8(charset, defaultCharset); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultParameterLimit
	}

	if n := bytes.Count(b, []byte("&")) + 1; len(b) > 0 && n > limit {
		return nil, fmt.Errorf("%w: %d parameters exceeds %d", gw.ErrBodyTooLarge, n, limit)
	}

	vals, err := url.ParseQuery(string(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", gw.ErrBadFormat, err)
	}

	return vals, nil
}

// checkUTF8 only accepts UTF-8 and its ASCII subset,
// falling back to def when charset is unset.
func checkUTF8(charset, def string) error {
	if charset == "" {
		charset = def
	}

	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "us-ascii":
		return nil
	default:
		return fmt.Errorf("%w: %q", gw.ErrUnsupportedCharset, charset)
	}
}
