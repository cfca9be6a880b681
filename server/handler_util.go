package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/tsawler/pagelayout"
)

const maxUploadSize = 64 << 20

type File struct {
	Name string

	Content     []byte
	ContentType string
}

func readFile(r *http.Request) (*File, error) {
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)

		if err != nil {
			return nil, err
		}

		return &File{
			Name: header.Filename,

			Content:     data,
			ContentType: header.Header.Get("Content-Type"),
		}, nil
	}

	contentType := r.Header.Get("Content-Type")
	contentDisposition := r.Header.Get("Content-Disposition")

	_, params, _ := mime.ParseMediaType(contentDisposition)

	filename := params["filename*"]
	filename = strings.TrimPrefix(filename, "UTF-8''")
	filename = strings.TrimPrefix(filename, "utf-8''")

	if filename == "" {
		filename = params["filename"]
	}

	data, err := io.ReadAll(r.Body)

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	return &File{
		Name: filename,

		Content:     data,
		ContentType: contentType,
	}, nil
}

func valuePages(r *http.Request) ([]int, error) {
	return pagelayout.ParsePages(r.FormValue("pages"))
}
