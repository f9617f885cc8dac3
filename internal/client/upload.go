package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"cinecraft/internal/upload"
)

type UploadAPI struct{ c *Client }

func (c *Client) Upload() UploadAPI { return UploadAPI{c: c} }

// File is one file to send.
type File struct {
	Name string
	Body io.Reader
}

// Image posts to /api/upload/image (field "image").
func (a UploadAPI) Image(ctx context.Context, f File, onProgress func(int)) (upload.Stored, error) {
	return a.single(ctx, "/api/upload/image", "image", f, onProgress)
}

// Single posts a booking attachment to /api/upload/single (field "file").
func (a UploadAPI) Single(ctx context.Context, f File, onProgress func(int)) (upload.Stored, error) {
	return a.single(ctx, "/api/upload/single", "file", f, onProgress)
}

func (a UploadAPI) single(ctx context.Context, path, field string, f File, onProgress func(int)) (upload.Stored, error) {
	var out upload.Stored
	err := a.post(ctx, path, field, []File{f}, onProgress, &out)
	return out, err
}

func (a UploadAPI) Multiple(ctx context.Context, files []File, onProgress func(int)) ([]upload.Stored, error) {
	var out []upload.Stored
	err := a.post(ctx, "/api/upload/multiple", "files", files, onProgress, &out)
	return out, err
}

// Delete removes a stored file by public ID.
func (a UploadAPI) Delete(ctx context.Context, publicID string) error {
	_, err := a.c.do(ctx, http.MethodDelete, "/api/upload/"+strings.TrimPrefix(publicID, "/"), nil, nil)
	return err
}

// post sends a multipart body. Progress is simulated: it climbs to 90 while
// the request is in flight, then jumps to 100 on success or 0 on failure.
func (a UploadAPI) post(ctx context.Context, path, field string, files []File, onProgress func(int), out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := mw.CreateFormFile(field, f.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, f.Body); err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, upload.Timeout)
	defer cancel()

	progress := &upload.Progress{OnChange: onProgress}
	progress.Start(ctx)

	err := a.send(ctx, path, &buf, mw.FormDataContentType(), out)
	if err != nil {
		progress.Fail()
		return err
	}
	progress.Done()
	return nil
}

func (a UploadAPI) send(ctx context.Context, path string, body io.Reader, contentType string, out any) error {
	req, err := a.c.newRequest(ctx, http.MethodPost, path, body, contentType)
	if err != nil {
		return err
	}
	// upload.Timeout replaces the client's 10s default
	hc := *a.c.httpClient()
	hc.Timeout = upload.Timeout
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		a.c.unauthorized()
	}
	env, err := readEnvelope(resp)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
