package validator

import (
	"fmt"
	"mime"
	"strings"
)

const (
	maxObjectKeyLen   = 1024
	maxContentTypeLen = 255
	asciiControlStart = 32
	asciiDelete       = 127

	errObjectKeyEmptyFmt        = "file name cannot be empty"
	errObjectKeyMaxLengthFmt    = "file name must not exceed %d characters"
	errObjectKeyPathSepFmt      = "file name cannot contain path separators"
	errObjectKeyTraversalFmt    = "file name cannot contain path traversal"
	errObjectKeyControlCharsFmt = "file name cannot contain control characters"
	errContentTypeMaxLengthFmt  = "content type must not exceed %d characters"
	errContentTypeInvalidFmt    = "invalid content type"
)

// ObjectKey checks a client-supplied file name before it is used verbatim as
// an object key. Uniqueness is not checked: equal names overwrite each other.
func ObjectKey(name string) error {
	if name == "" {
		return fmt.Errorf(errObjectKeyEmptyFmt)
	}

	if len(name) > maxObjectKeyLen {
		return fmt.Errorf(errObjectKeyMaxLengthFmt, maxObjectKeyLen)
	}

	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf(errObjectKeyPathSepFmt)
	}

	if name == "." || name == ".." {
		return fmt.Errorf(errObjectKeyTraversalFmt)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errObjectKeyControlCharsFmt)
		}
	}

	return nil
}

func ContentType(contentType string) error {
	if contentType == "" {
		return nil
	}

	if len(contentType) > maxContentTypeLen {
		return fmt.Errorf(errContentTypeMaxLengthFmt, maxContentTypeLen)
	}

	if _, _, err := mime.ParseMediaType(contentType); err != nil {
		return fmt.Errorf(errContentTypeInvalidFmt)
	}

	return nil
}
