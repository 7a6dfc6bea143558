package main

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	codevf "github.com/codevf/codevf-go"
)

// parseMetadata turns repeated key=value flags into task metadata.
// Values that parse as bool or number are typed accordingly.
func parseMetadata(pairs []string) (codevf.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(codevf.Metadata, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta entry %q, expected key=value", pair)
		}
		switch {
		case value == "true" || value == "false":
			meta[key] = value == "true"
		default:
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				meta[key] = n
			} else {
				meta[key] = value
			}
		}
	}
	return meta, nil
}

// binaryExtensions are the attachment categories that go over the wire
// base64-encoded.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".pdf": true,
}

// loadAttachments reads files from disk into attachment payloads,
// base64-encoding binary categories.
func loadAttachments(paths []string) ([]codevf.Attachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	attachments := make([]codevf.Attachment, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ext := strings.ToLower(filepath.Ext(path))
		mimeType := mime.TypeByExtension(ext)
		if mimeType == "" {
			mimeType = "text/plain"
		}
		content := string(data)
		if binaryExtensions[ext] {
			content = base64.StdEncoding.EncodeToString(data)
		}
		attachments = append(attachments, codevf.Attachment{
			FileName: filepath.Base(path),
			MimeType: mimeType,
			Content:  content,
		})
	}
	return attachments, nil
}
