package httpapi

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

const (
	maxRequestBodyBytes = 1 << 20
	maxMultipartMemory  = 1 << 20
)

// decodePayload reads the request body as a loose field map. The structured stage follows
// the content type; when it yields nothing the raw bytes are tried as a JSON object.
// A body neither stage understands becomes an empty map and is rejected by validation.
func decodePayload(ctx context.Context, r *http.Request) map[string]any {
	_, span := startSpan(ctx, "httpapi.decodePayload")
	defer span.End()

	if r.Body == nil {
		return map[string]any{}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(r.Body, maxRequestBodyBytes)); err != nil {
		return map[string]any{}
	}
	raw := buf.B

	fields := decodeStructured(r.Header.Get("Content-Type"), raw)
	if len(fields) > 0 {
		return fields
	}

	if fallback, ok := decodeJSONObject(raw); ok {
		return fallback
	}
	return map[string]any{}
}

func decodeStructured(contentType string, raw []byte) map[string]any {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		fields, _ := decodeJSONObject(raw)
		return fields
	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil
		}
		return formFields(values)
	case mediaType == "multipart/form-data":
		boundary := params["boundary"]
		if boundary == "" {
			return nil
		}
		form, err := multipart.NewReader(bytes.NewReader(raw), boundary).ReadForm(maxMultipartMemory)
		if err != nil {
			return nil
		}
		defer func() { _ = form.RemoveAll() }()
		return formFields(form.Value)
	default:
		return nil
	}
}

// decodeJSONObject copies strings out of raw, which belongs to a pooled buffer.
func decodeJSONObject(raw []byte) (map[string]any, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var fields map[string]any
	if err := sonic.ConfigStd.Unmarshal(trimmed, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func formFields(values map[string][]string) map[string]any {
	fields := make(map[string]any, len(values))
	for key, list := range values {
		if len(list) == 0 {
			continue
		}
		fields[key] = list[len(list)-1]
	}
	return fields
}
