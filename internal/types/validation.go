package types

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	cverr "github.com/codevf/codevf-go/internal/errors"
)

// Limits enforced before any network call. They mirror the server's own
// rejection rules so invalid requests never spend a round trip.
const (
	PromptMinLength = 10
	PromptMaxLength = 10000

	MinCredits = 1
	MaxCredits = 1920

	AttachmentLimit = 5
	MaxTextBytes    = 1_048_576  // raw UTF-8 bytes
	MaxBinaryBytes  = 10_485_760 // base64-encoded bytes, whitespace stripped
)

// ValidatePrompt checks the prompt length bounds.
func ValidatePrompt(prompt string) error {
	if n := len(prompt); n < PromptMinLength || n > PromptMaxLength {
		return cverr.NewValidation(cverr.KindBadRequest,
			"prompt must be between %d and %d characters", PromptMinLength, PromptMaxLength)
	}
	return nil
}

// ResolveMode validates a mode name, defaulting to standard when empty.
func ResolveMode(mode ServiceMode) (ServiceMode, error) {
	if mode == "" {
		return ModeStandard, nil
	}
	if !mode.Valid() {
		return "", cverr.NewValidation(cverr.KindInvalidMode,
			"%q is not a supported service mode", string(mode))
	}
	return mode, nil
}

// ValidateMaxCredits checks the global [1,1920] bound and the band for
// the selected mode.
func ValidateMaxCredits(maxCredits int, mode ServiceMode) error {
	if maxCredits < MinCredits || maxCredits > MaxCredits {
		return cverr.NewValidation(cverr.KindMaxCreditsExceeded,
			"maxCredits must be between %d and %d, got %d", MinCredits, MaxCredits, maxCredits)
	}
	min, max := mode.CreditRange()
	if maxCredits < min || maxCredits > max {
		return cverr.NewValidation(cverr.KindMaxCreditsExceeded,
			"maxCredits %d is outside the [%d,%d] range for mode %s", maxCredits, min, max, mode)
	}
	return nil
}

// ValidateTagID checks an explicitly supplied tag id. Zero means "use
// the general-purpose default tag" and is always valid.
func ValidateTagID(tagID int64) error {
	if tagID < 0 {
		return cverr.NewValidation(cverr.KindInvalidTag, "tagId must be a positive integer, got %d", tagID)
	}
	return nil
}

// ValidateMetadata checks that metadata is a flat mapping of primitive
// values. Nested containers are rejected; nil values pass through as the
// server accepts explicit nulls.
func ValidateMetadata(metadata Metadata) error {
	for key, value := range metadata {
		if key == "" {
			return cverr.NewValidation(cverr.KindInvalidMetadata, "metadata keys must be non-empty strings")
		}
		switch value.(type) {
		case nil, string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
		default:
			return cverr.NewValidation(cverr.KindInvalidMetadata,
				"metadata value for %q must be a string, number or boolean", key)
		}
	}
	return nil
}

// ValidateIdempotencyKey requires a well-formed UUID when a key is set.
func ValidateIdempotencyKey(key string) error {
	if key == "" {
		return nil
	}
	if _, err := uuid.Parse(key); err != nil {
		return cverr.NewValidation(cverr.KindBadRequest, "idempotencyKey must be a valid UUID")
	}
	return nil
}

// ------------------------------
// Attachments
// ------------------------------

// attachmentCategory groups file types sharing a size limit and content
// encoding.
type attachmentCategory struct {
	name           string
	extensions     []string
	mimeTypes      []string
	maxBytes       int
	requiresBase64 bool
}

func (c *attachmentCategory) matches(fileName, mimeType string) bool {
	lower := strings.ToLower(fileName)
	for _, ext := range c.extensions {
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	for _, mt := range c.mimeTypes {
		if mimeType == mt {
			return true
		}
	}
	return false
}

var attachmentCategories = []*attachmentCategory{
	{
		name:           "image",
		extensions:     []string{"png", "jpg", "jpeg", "gif", "webp"},
		mimeTypes:      []string{"image/png", "image/jpeg", "image/gif", "image/webp"},
		maxBytes:       MaxBinaryBytes,
		requiresBase64: true,
	},
	{
		name:           "pdf",
		extensions:     []string{"pdf"},
		mimeTypes:      []string{"application/pdf"},
		maxBytes:       MaxBinaryBytes,
		requiresBase64: true,
	},
	{
		name:       "code",
		extensions: []string{"py", "js", "ts", "java", "cpp", "c", "cs", "go", "rs", "kt", "swift", "php", "rb", "jsx", "tsx"},
		mimeTypes: []string{
			"text/x-python", "application/javascript", "text/typescript",
			"text/x-java-source", "application/x-c++src", "text/x-csrc",
			"text/x-csharp", "text/x-go", "text/x-rustsrc", "text/x-kotlin",
			"text/x-php", "text/x-ruby",
		},
		maxBytes: MaxTextBytes,
	},
	{
		name:       "text",
		extensions: []string{"txt", "json", "xml", "csv", "log", "md"},
		mimeTypes:  []string{"text/plain", "application/json", "text/xml", "application/xml", "text/csv"},
		maxBytes:   MaxTextBytes,
	},
}

func selectCategory(fileName, mimeType string) (*attachmentCategory, error) {
	for _, c := range attachmentCategories {
		if c.matches(fileName, mimeType) {
			return c, nil
		}
	}
	return nil, cverr.NewValidation(cverr.KindAttachmentTooLarge,
		"unsupported attachment type: %q (%s)", fileName, mimeType)
}

// ValidateAttachment checks one attachment: known category, size within
// the category limit, and valid base64 content for binary categories.
// Text sizes are counted pre-encoding; binary sizes post-encoding with
// whitespace stripped.
func ValidateAttachment(a Attachment) error {
	if a.FileName == "" {
		return cverr.NewValidation(cverr.KindAttachmentTooLarge, "attachment fileName cannot be empty")
	}
	if a.MimeType == "" {
		return cverr.NewValidation(cverr.KindAttachmentTooLarge, "attachment mimeType cannot be empty")
	}
	cat, err := selectCategory(a.FileName, a.MimeType)
	if err != nil {
		return err
	}

	content := a.Content
	if cat.requiresBase64 {
		content = stripSpace(content)
	}
	if len(content) > cat.maxBytes {
		return cverr.NewValidation(cverr.KindAttachmentTooLarge,
			"%s exceeds the %d byte limit for %s files", a.FileName, cat.maxBytes, cat.name)
	}
	if cat.requiresBase64 {
		if _, err := base64.StdEncoding.DecodeString(content); err != nil {
			return cverr.NewValidation(cverr.KindAttachmentTooLarge,
				"%s must be valid base64 when uploading %s files", a.FileName, cat.name)
		}
	}
	return nil
}

// ValidateAttachments checks the set limit and every member.
func ValidateAttachments(attachments []Attachment) error {
	if len(attachments) > AttachmentLimit {
		return cverr.NewValidation(cverr.KindAttachmentLimitExceeded,
			"maximum of %d attachments allowed, got %d", AttachmentLimit, len(attachments))
	}
	for _, a := range attachments {
		if err := ValidateAttachment(a); err != nil {
			return err
		}
	}
	return nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
