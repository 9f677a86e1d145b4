package httpapi

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodePayload_Multipart(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("nombre", "Gavi")
	_ = writer.WriteField("equipoId", "1")
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/players", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	fields := decodePayload(context.Background(), req)
	if fields["nombre"] != "Gavi" || fields["equipoId"] != "1" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestDecodePayload_FallbackAndFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantKeys    int
	}{
		{name: "json", contentType: "application/json; charset=utf-8", body: `{"name":"Gavi","team_id":1}`, wantKeys: 2},
		{name: "vendor json", contentType: "application/vnd.players+json", body: `{"name":"Gavi"}`, wantKeys: 1},
		{name: "plain text falls back to raw json", contentType: "text/plain", body: ` {"name":"Gavi"} `, wantKeys: 1},
		{name: "json array is not a payload", contentType: "application/json", body: `[{"name":"Gavi"}]`, wantKeys: 0},
		{name: "garbage", contentType: "text/plain", body: `name=`, wantKeys: 0},
		{name: "empty", contentType: "application/json", body: ``, wantKeys: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			fields := decodePayload(context.Background(), req)
			if fields == nil {
				t.Fatalf("expected non-nil map")
			}
			if len(fields) != tt.wantKeys {
				t.Fatalf("expected %d keys, got %v", tt.wantKeys, fields)
			}
		})
	}
}
