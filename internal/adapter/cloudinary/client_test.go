package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"photoshare/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.CloudinaryConfig {
	return config.CloudinaryConfig{
		CloudName: "testcloud",
		APIKey:    "key123",
		APISecret: "secret456",
		Secure:    true,
	}
}

func TestUpload_SendsSignedMultipartRequest(t *testing.T) {
	var gotPath string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotForm = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotForm[k] = v[0]
		}
		fmt.Fprint(w, `{"public_id":"PhotoShare/alice@example.com_1","url":"http://res.test/a.jpg","secure_url":"https://res.test/a.jpg"}`)
	}))
	defer srv.Close()

	client := NewWithBaseURL(testConfig(), srv.URL)
	url, err := client.Upload(context.Background(), []byte("jpegdata"), "PhotoShare/alice@example.com_1")

	assert.NoError(t, err)
	assert.Equal(t, "https://res.test/a.jpg", url)
	assert.Equal(t, "/v1_1/testcloud/image/upload", gotPath)
	assert.Equal(t, "PhotoShare/alice@example.com_1", gotForm["public_id"])
	assert.Equal(t, "key123", gotForm["api_key"])
	assert.NotEmpty(t, gotForm["timestamp"])

	// signature covers the sorted signable params plus the secret
	toSign := fmt.Sprintf("public_id=%s&timestamp=%s%s",
		gotForm["public_id"], gotForm["timestamp"], "secret456")
	sum := sha1.Sum([]byte(toSign))
	assert.Equal(t, hex.EncodeToString(sum[:]), gotForm["signature"])

	// uploaded bytes travel as a file part, not a form value
	assert.NotContains(t, gotForm, "file")
}

func TestTransform_SendsSourceURLAndTransformation(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotForm = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotForm[k] = v[0]
		}
		fmt.Fprint(w, `{"public_id":"x","url":"http://res.test/t.jpg","secure_url":"https://res.test/t.jpg"}`)
	}))
	defer srv.Close()

	client := NewWithBaseURL(testConfig(), srv.URL)
	url, err := client.Transform(context.Background(),
		"https://res.test/a.jpg", "PhotoShare(transformed)/alice@example.com_1", "c_fill,w_400,h_300")

	assert.NoError(t, err)
	assert.Equal(t, "https://res.test/t.jpg", url)
	assert.Equal(t, "https://res.test/a.jpg", gotForm["file"])
	assert.Equal(t, "c_fill,w_400,h_300", gotForm["transformation"])
}

func TestUpload_InsecureConfigPrefersPlainURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"public_id":"x","url":"http://res.test/a.jpg","secure_url":"https://res.test/a.jpg"}`)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Secure = false
	client := NewWithBaseURL(cfg, srv.URL)

	url, err := client.Upload(context.Background(), []byte("data"), "pid")
	assert.NoError(t, err)
	assert.Equal(t, "http://res.test/a.jpg", url)
}

func TestUpload_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid image file"}}`)
	}))
	defer srv.Close()

	client := NewWithBaseURL(testConfig(), srv.URL)
	_, err := client.Upload(context.Background(), []byte("notanimage"), "pid")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
	assert.Contains(t, err.Error(), "400")
}
