package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// DownloadImage fetches the image behind the URL into a temporary file and
// returns its path. The file is closed before returning and cleaned up on
// every failure path; removing it after use is up to the caller.
func DownloadImage(uri string) (string, error) {
	res, err := http.Get(uri)
	if err != nil {
		return "", fmt.Errorf("unable to download the image file from URI %s: %w", uri, err)
	}
	defer res.Body.Close()

	tmpfile, err := os.CreateTemp("", "carve-*")
	if err != nil {
		return "", fmt.Errorf("unable to create a temporary file: %w", err)
	}

	_, err = io.Copy(tmpfile, res.Body)
	if cerr := tmpfile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpfile.Name())
		return "", fmt.Errorf("unable to save the source URI into the temporary file: %w", err)
	}

	ctype, err := DetectContentType(tmpfile.Name())
	if err != nil {
		os.Remove(tmpfile.Name())
		return "", err
	}
	if !strings.HasPrefix(ctype, "image") {
		os.Remove(tmpfile.Name())
		return "", fmt.Errorf("the downloaded file is not a valid image type")
	}

	return tmpfile.Name(), nil
}

// IsValidUrl reports whether the string is an absolute URL with a host,
// which is how the CLI tells remote sources apart from local paths.
func IsValidUrl(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// DetectContentType sniffs the MIME type from the leading bytes of the file.
func DetectContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer file.Close()

	// http.DetectContentType considers at most the first 512 bytes.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	return http.DetectContentType(buffer[:n]), nil
}
