package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/mkamel/corsite-backend/internal/files"
)

// multipartMemoryLimit bounds the in-memory portion of multipart parsing;
// larger parts spill to temporary files.
const multipartMemoryLimit = 32 << 20

// parseUploads parses the request as a multipart form and converts every
// file part into a [files.Upload] keyed by its form field name. A field
// carrying several files keeps only the first one; the attachment slots of
// this API are all single-file.
func parseUploads(r *http.Request) (map[string]files.Upload, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}
	if r.MultipartForm == nil {
		return map[string]files.Upload{}, nil
	}

	uploads := make(map[string]files.Upload, len(r.MultipartForm.File))
	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		upload, err := readUpload(headers[0])
		if err != nil {
			return nil, fmt.Errorf("reading upload %q: %w", field, err)
		}
		uploads[field] = upload
	}

	return uploads, nil
}

// parseUploadList parses the request as a multipart form and returns every
// file part submitted under the given field, in submission order.
func parseUploadList(r *http.Request, field string) ([]files.Upload, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[field]
	uploads := make([]files.Upload, 0, len(headers))
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			return nil, fmt.Errorf("reading upload %q: %w", header.Filename, err)
		}
		uploads = append(uploads, upload)
	}

	return uploads, nil
}

func readUpload(header *multipart.FileHeader) (files.Upload, error) {
	file, err := header.Open()
	if err != nil {
		return files.Upload{}, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return files.Upload{}, err
	}

	return files.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(content)),
		Content:     content,
	}, nil
}
