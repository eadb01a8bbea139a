package body_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/http/body"
	"github.com/stretchr/testify/require"
)

func newRequest(contentType, payload string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "https://example.com/foo", strings.NewReader(payload))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}

	return r
}

func TestDecoderDecode(t *testing.T) {
	tcs := []struct {
		name        string
		mode        gw.BodyMode
		opts        gw.BodyOptions
		contentType string
		payload     string
		expected    any
	}{
		{"JSON", gw.BodyJSON, gw.BodyOptions{}, "application/json", `{"ok": true}`, map[string]any{"ok": true}},
		{"JSON-Charset", gw.BodyJSON, gw.BodyOptions{}, "application/json; charset=UTF-8", `[1, 2]`, []any{float64(1), float64(2)}},
		{"JSON-Scalar", gw.BodyJSON, gw.BodyOptions{}, "application/json", `"hi"`, "hi"},
		{"JSON-Custom-Type", gw.BodyJSON, gw.BodyOptions{Types: []string{"+json"}}, "application/vnd.api+json", `{}`, map[string]any{}},
		{"Text", gw.BodyText, gw.BodyOptions{}, "text/plain", "hello world!", "hello world!"},
		{"Text-Wildcard", gw.BodyText, gw.BodyOptions{Types: []string{"text/*"}}, "text/csv", "a,b", "a,b"},
		{"URLEncoded", gw.BodyURLEncoded, gw.BodyOptions{}, "application/x-www-form-urlencoded", "foo=1&bar=2", url.Values{"foo": []string{"1"}, "bar": []string{"2"}}},
		{"Raw", gw.BodyRaw, gw.BodyOptions{}, "application/octet-stream", "foo bar", []byte("foo bar")},
		{"Raw-Any", gw.BodyRaw, gw.BodyOptions{Types: []string{"*/*"}}, "image/png", "png", []byte("png")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := newRequest(tc.contentType, tc.payload)

			// Act
			actual, consumed, err := body.Decoder{}.Decode(tc.mode, tc.opts, r)

			// Assert
			require.Nil(t, err)
			require.True(t, consumed)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestDecoderDecodeUnknownLength(t *testing.T) {
	// Arrange
	r := newRequest("application/json", `{"ok": true}`)
	r.ContentLength = -1
	r.TransferEncoding = nil

	// Act
	actual, consumed, err := body.Decoder{}.Decode(gw.BodyJSON, gw.BodyOptions{}, r)

	// Assert
	require.Nil(t, err)
	require.True(t, consumed)
	require.Equal(t, map[string]any{"ok": true}, actual)
}

func TestDecoderDecodeSkips(t *testing.T) {
	tcs := []struct {
		name string
		mode gw.BodyMode
		r    *http.Request
	}{
		{"No-Body", gw.BodyJSON, httptest.NewRequest(http.MethodPost, "https://example.com/foo", nil)},
		{"No-Content-Type", gw.BodyJSON, newRequest("", `{}`)},
		{"Bad-Content-Type", gw.BodyJSON, newRequest("application/", `{}`)},
		{"Mismatched-Type", gw.BodyJSON, newRequest("text/plain", `{}`)},
		{"Mismatched-Raw", gw.BodyRaw, newRequest("application/json", `{}`)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, consumed, err := body.Decoder{}.Decode(tc.mode, gw.BodyOptions{}, tc.r)

			// Assert
			require.Nil(t, err)
			require.False(t, consumed)
			require.Nil(t, actual)
		})
	}
}

func TestDecoderDecodeErrors(t *testing.T) {
	tcs := []struct {
		name        string
		mode        gw.BodyMode
		opts        gw.BodyOptions
		contentType string
		payload     string
		expected    error
	}{
		{"JSON-Malformed", gw.BodyJSON, gw.BodyOptions{}, "application/json", `{"ok":`, gw.ErrBadFormat},
		{"JSON-Strict", gw.BodyJSON, gw.BodyOptions{Strict: true}, "application/json", `true`, gw.ErrBadFormat},
		{"JSON-Charset", gw.BodyJSON, gw.BodyOptions{}, "application/json; charset=latin1", `{}`, gw.ErrUnsupportedCharset},
		{"Text-Default-Charset", gw.BodyText, gw.BodyOptions{DefaultCharset: "utf-16"}, "text/plain", "hi", gw.ErrUnsupportedCharset},
		{"Too-Large", gw.BodyRaw, gw.BodyOptions{Limit: 3}, "application/octet-stream", "foo bar", gw.ErrBodyTooLarge},
		{"Too-Many-Params", gw.BodyURLEncoded, gw.BodyOptions{ParameterLimit: 1}, "application/x-www-form-urlencoded", "a=1&b=2", gw.ErrBodyTooLarge},
		{"URLEncoded-Malformed", gw.BodyURLEncoded, gw.BodyOptions{}, "application/x-www-form-urlencoded", "a=%zz", gw.ErrBadFormat},
		{"Unknown-Mode", gw.BodyMode("multipart"), gw.BodyOptions{Types: []string{"*/*"}}, "multipart/form-data", "x", gw.ErrNotValid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := newRequest(tc.contentType, tc.payload)

			// Act
			actual, consumed, err := body.Decoder{}.Decode(tc.mode, tc.opts, r)

			// Assert
			require.ErrorIs(t, err, tc.expected)
			require.True(t, consumed)
			require.Nil(t, actual)
		})
	}
}
