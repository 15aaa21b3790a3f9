package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/transfer"
)

func newAIBackend(t *testing.T, imageResp map[string]any) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ai/generate-text", func(w http.ResponseWriter, r *http.Request) {
		var req transfer.GeneratePromptRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(transfer.GenerateTextResponse{GeneratedText: "drafted: " + req.Prompt})
	})
	mux.HandleFunc("/ai/generate-image", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(imageResp)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateText(t *testing.T) {
	srv := newAIBackend(t, nil)
	svc := NewAIService(config.Config{APIBaseURL: srv.URL}, nil)

	text, err := svc.GenerateText(context.Background(), "a launch post")
	require.NoError(t, err)
	assert.Equal(t, "drafted: a launch post", text)

	_, err = svc.GenerateText(context.Background(), "")
	assert.Error(t, err)
}

func TestGenerateImageURLVariants(t *testing.T) {
	cases := []struct {
		name string
		resp map[string]any
		want string
	}{
		{"url", map[string]any{"url": "https://img.example.com/1.png"}, "https://img.example.com/1.png"},
		{"image_url", map[string]any{"image_url": "https://img.example.com/2.png"}, "https://img.example.com/2.png"},
		{"s3_url", map[string]any{"s3_url": "https://bucket.s3.amazonaws.com/3.png"}, "https://bucket.s3.amazonaws.com/3.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newAIBackend(t, tc.resp)
			svc := NewAIService(config.Config{APIBaseURL: srv.URL}, nil)

			asset, err := svc.GenerateImage(context.Background(), "a sunset")
			require.NoError(t, err)
			assert.Equal(t, tc.want, asset.URL)
			assert.True(t, asset.AIGenerated)
			assert.NotEmpty(t, asset.ID)
			assert.Equal(t, "image", asset.Type)
		})
	}
}

func TestGenerateImageNoURL(t *testing.T) {
	srv := newAIBackend(t, map[string]any{"type": "image"})
	svc := NewAIService(config.Config{APIBaseURL: srv.URL}, nil)

	_, err := svc.GenerateImage(context.Background(), "a sunset")
	assert.Error(t, err)
}
