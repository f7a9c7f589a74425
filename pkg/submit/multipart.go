package submit

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/goliatone/go-simform/pkg/dom"
)

// EncodeMultipart serialises the payload as multipart/form-data, one part per
// entry in payload order. It returns the body and the Content-Type header
// carrying the boundary.
func EncodeMultipart(payload dom.Payload) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, entry := range payload {
		if err := writer.WriteField(entry.Name, entry.Value); err != nil {
			return nil, "", fmt.Errorf("submit: write field %q: %w", entry.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("submit: close multipart body: %w", err)
	}
	return &body, writer.FormDataContentType(), nil
}
