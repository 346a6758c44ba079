// Package encoding converts raw image bytes to and from base64 data URLs,
// the transport format the extraction endpoint accepts.
package encoding

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
}

// DataURL encodes image bytes as a base64 data URL. The MIME type is sniffed
// from the content, falling back to the filename extension. No size or format
// validation happens here; that is the extraction endpoint's job.
func DataURL(data []byte, filename string) string {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		if byExt, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ok {
			mimeType = byExt
		}
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EncodeFile reads an image file and returns its data URL. Read errors
// propagate to the caller.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return DataURL(data, path), nil
}

// Payload returns the base64 payload portion of a data URL, i.e. everything
// after the first comma.
func Payload(dataURL string) string {
	if i := strings.Index(dataURL, ","); i >= 0 {
		return dataURL[i+1:]
	}
	return ""
}

// Decode splits a data URL into its image subtype and decoded bytes.
func Decode(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:image/")
	if !ok {
		return "", nil, fmt.Errorf("not an image data URL")
	}
	subtype, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return subtype, data, nil
}

// DecodedSize estimates the decoded byte size of a base64 payload as
// ceil(len * 0.75). This matches the base64 expansion ratio rather than an
// exact decode, so padding can overcount by up to two bytes.
func DecodedSize(payload string) int {
	return (len(payload)*3 + 3) / 4
}
