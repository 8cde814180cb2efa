package utils

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// samplePNG encodes a small image so the content sniffer has real image bytes.
func samplePNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("could not encode the sample image: %v", err)
	}
	return buf.Bytes()
}

func TestUtils_ShouldDownloadImage(t *testing.T) {
	data := samplePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	path, err := DownloadImage(srv.URL)
	if err != nil {
		t.Fatalf("couldn't download test file: %v", err)
	}
	defer os.Remove(path)

	if !strings.Contains(path, "tmp") {
		t.Errorf("the downloaded image should have been saved in a temporary folder")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("the downloaded image should be readable on disk: %v", err)
	}
}

func TestUtils_ShouldRejectNonImageDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	path, err := DownloadImage(srv.URL)
	if err == nil {
		t.Errorf("downloading a non-image file should have failed")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("the temporary file should have been removed on failure")
	}
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	if ok := IsValidUrl("https://example.com/sample.jpg"); !ok {
		t.Errorf("a valid URL should have been accepted")
	}
	if ok := IsValidUrl("testdata/sample.jpg"); ok {
		t.Errorf("a relative path should not be a valid URL")
	}
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "sample*.png")
	if err != nil {
		t.Fatalf("could not create the temporary file: %v", err)
	}
	if _, err := tmp.Write(samplePNG(t)); err != nil {
		t.Fatalf("could not write the sample image: %v", err)
	}
	tmp.Close()

	ftype, err := DetectContentType(tmp.Name())
	if err != nil {
		t.Fatalf("could not detect content type: %v", err)
	}

	if !strings.Contains(ftype, "image") {
		t.Errorf("content type expected to be of type image, got: %v", ftype)
	}
}
