package validation

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/username/propledger/backend/src/logger"
)

// AllowedExtensions maps each accepted upload extension to its content family.
var AllowedExtensions = map[string]string{
	".csv":  "text",
	".txt":  "text",
	".xlsx": "workbook",
	".xlsm": "workbook",
}

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
// Browsers are inconsistent about spreadsheets, so octet-stream is tolerated and the
// real decision is made on the bytes.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"text/plain":               true,
	"application/csv":          true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel.sheet.macroenabled.12":                    true,
	"application/octet-stream":                                          true,
	"application/zip":                                                   true,
}

var zipMagic = []byte("PK\x03\x04")

// ValidateFileExtension returns the lowercased extension when it is accepted.
func ValidateFileExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: file extension '%s' is not allowed (use .csv, .txt, .xlsx or .xlsm)", ErrValidationFailed, ext)
	}
	return ext, nil
}

// ValidateClientContentType checks the Content-Type header provided by the client.
// An empty header is accepted.
func ValidateClientContentType(contentType string) error {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ct == "" {
		return nil
	}
	if !AllowedClientContentTypes[ct] {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("%w: client-declared file type '%s' is not allowed", ErrValidationFailed, contentType)
	}
	return nil
}

// ValidateFileContent inspects the first bytes of file and checks they agree with
// ext. Workbooks must be zip containers; text files must not contain NUL bytes.
// Text is not required to be UTF-8 because Latin-1 exports are common.
// The read position is reset to the start on success.
func ValidateFileContent(file io.ReadSeeker, ext string) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 1024)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read file for content type checking: %w", err)
	}
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}
	if n == 0 {
		return fmt.Errorf("%w: file is empty", ErrValidationFailed)
	}
	head := buffer[:n]

	switch AllowedExtensions[ext] {
	case "workbook":
		if !bytes.HasPrefix(head, zipMagic) {
			logger.L.Warn("File rejected: workbook extension without zip signature", "ext", ext)
			return fmt.Errorf("%w: file is not a valid %s workbook", ErrValidationFailed, ext)
		}
	case "text":
		if bytes.HasPrefix(head, zipMagic) || bytes.IndexByte(head, 0) != -1 {
			logger.L.Warn("File rejected: binary content detected in text upload", "ext", ext)
			return fmt.Errorf("%w: file appears to be binary, not delimited text", ErrValidationFailed)
		}
	default:
		return fmt.Errorf("%w: file extension '%s' is not allowed", ErrValidationFailed, ext)
	}

	logger.L.Debug("File content validated", "ext", ext, "bytesInspected", n)
	return nil
}
