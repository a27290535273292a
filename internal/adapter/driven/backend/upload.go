package backend

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// FileUpload builds a multipart/form-data POST descriptor carrying one file
// under field. The multipart Content-Type (with boundary) is set here because
// Issue leaves Content-Type alone for file uploads.
func FileUpload(endpoint, field, filename string, content io.Reader) (model.RequestDescriptor, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return model.RequestDescriptor{}, fmt.Errorf("creating form file %q: %w", filename, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return model.RequestDescriptor{}, fmt.Errorf("copying %q into form: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return model.RequestDescriptor{}, fmt.Errorf("closing multipart writer: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", mw.FormDataContentType())

	return model.RequestDescriptor{
		Endpoint: endpoint,
		Options: model.RequestOptions{
			Method: http.MethodPost,
			Body:   &buf,
			Header: header,
		},
		FileUpload: true,
	}, nil
}
