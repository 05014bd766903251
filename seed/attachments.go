package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"chat-secure/domain"
)

// AttachmentKindOf classifies content by sniffing its bytes. Anything
// with an image/* MIME type renders as an image; everything else is a
// generic file.
func AttachmentKindOf(data []byte) domain.AttachmentKind {
	if strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		return domain.AttachmentImage
	}
	return domain.AttachmentFile
}

// NewAttachmentFromFile builds an attachment for a local file, detecting
// its kind from content rather than trusting the extension.
func NewAttachmentFromFile(path string) (domain.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("reading attachment %s: %w", path, err)
	}
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("detecting attachment type for %s: %w", path, err)
	}

	kind := domain.AttachmentFile
	if strings.HasPrefix(detected.String(), "image/") {
		kind = domain.AttachmentImage
	}
	return domain.Attachment{
		ID:   uuid.NewString(),
		Kind: kind,
		URL:  "file://" + path,
		Name: filepath.Base(path),
		Size: info.Size(),
	}, nil
}
