package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/captain-sol/voyage-client/pkg/metrics"
)

const (
	uploadImagePath    = "/api/upload-image"
	uploadJSONPath     = "/api/upload-json"
	uploadMetadataPath = "/api/upload"
	dataPath           = "/api/data/"
	imagePath          = "/api/image/"

	apiKeyHeader = "x-api-key"

	metricsStructName = "ipfs.client"
)

// Client talks to the companion IPFS HTTP server. Uploads require the API
// key; reads are public but send it anyway.
type Client struct {
	log *logrus.Entry

	client  *http.Client
	baseUrl string
	apiKey  string
}

// NewClient returns a client for the server at baseUrl. A nil httpClient uses
// http.DefaultClient.
func NewClient(baseUrl, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		log:     logrus.StandardLogger().WithField("type", "ipfs/client"),
		client:  httpClient,
		baseUrl: strings.TrimRight(baseUrl, "/"),
		apiKey:  apiKey,
	}
}

// GatewayURL is where the server serves the image stored under cid.
func (c *Client) GatewayURL(cid string) string {
	return c.baseUrl + imagePath + cid
}

// DataURL is where the server serves the JSON document stored under cid.
func (c *Client) DataURL(cid string) string {
	return c.baseUrl + dataPath + cid
}

func (c *Client) UploadBytes(ctx context.Context, data []byte) (string, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "UploadBytes")
	defer tracer.End()

	cid, err := c.uploadBytes(ctx, data)
	if err != nil {
		tracer.OnError(err)
	}
	return cid, err
}

func (c *Client) uploadBytes(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyContent
	}

	body, contentType, err := newMultipartBody(nil, data)
	if err != nil {
		return "", err
	}

	var result struct {
		ImageCID string `json:"imageCID"`
	}
	if err := c.do(ctx, http.MethodPost, uploadImagePath, contentType, body, &result); err != nil {
		return "", errors.Wrap(err, "failed to upload image")
	}
	if len(result.ImageCID) == 0 {
		return "", errors.New("failed to upload image: response missing imageCID")
	}
	return result.ImageCID, nil
}

func (c *Client) UploadJSON(ctx context.Context, v interface{}) (string, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "UploadJSON")
	defer tracer.End()

	cid, err := c.uploadJSON(ctx, v)
	if err != nil {
		tracer.OnError(err)
	}
	return cid, err
}

func (c *Client) uploadJSON(ctx context.Context, v interface{}) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode json")
	}
	if isEmptyJSON(encoded) {
		return "", ErrEmptyContent
	}

	var result struct {
		DataCID string `json:"dataCID"`
	}
	if err := c.do(ctx, http.MethodPost, uploadJSONPath, "application/json", bytes.NewReader(encoded), &result); err != nil {
		return "", errors.Wrap(err, "failed to upload json")
	}
	if len(result.DataCID) == 0 {
		return "", errors.New("failed to upload json: response missing dataCID")
	}
	return result.DataCID, nil
}

// MetadataUpload is the result of UploadMetadata.
type MetadataUpload struct {
	DataCID  string `json:"dataCID"`
	ImageCID string `json:"imageCID"`
	ImageURL string `json:"imageURL"`
}

// UploadMetadata stores an image and a {name, description, image, imageURL,
// timestamp} document referencing it in one request.
func (c *Client) UploadMetadata(ctx context.Context, name, description string, image []byte) (*MetadataUpload, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "UploadMetadata")
	defer tracer.End()

	result, err := c.uploadMetadata(ctx, name, description, image)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (c *Client) uploadMetadata(ctx context.Context, name, description string, image []byte) (*MetadataUpload, error) {
	if len(name) == 0 || len(description) == 0 || len(image) == 0 {
		return nil, errors.Wrap(ErrEmptyContent, "name, description and image are required")
	}

	body, contentType, err := newMultipartBody(map[string]string{
		"name":        name,
		"description": description,
	}, image)
	if err != nil {
		return nil, err
	}

	var result MetadataUpload
	if err := c.do(ctx, http.MethodPost, uploadMetadataPath, contentType, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to upload metadata")
	}
	return &result, nil
}

func (c *Client) FetchJSON(ctx context.Context, cid string) (json.RawMessage, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "FetchJSON")
	tracer.AddAttribute("cid", cid)
	defer tracer.End()

	data, err := c.fetchJSON(ctx, cid)
	if err != nil {
		tracer.OnError(err)
	}
	return data, err
}

func (c *Client) fetchJSON(ctx context.Context, cid string) (json.RawMessage, error) {
	if err := ValidateCID(cid); err != nil {
		return nil, err
	}

	var result struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, dataPath+cid, "", nil, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve json %s", cid)
	}
	if len(result.Data) == 0 || string(result.Data) == "null" {
		return nil, errors.Wrap(ErrNotFound, cid)
	}
	return result.Data, nil
}

func (c *Client) FetchBytes(ctx context.Context, cid string) ([]byte, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "FetchBytes")
	tracer.AddAttribute("cid", cid)
	defer tracer.End()

	data, err := c.fetchBytes(ctx, cid)
	if err != nil {
		tracer.OnError(err)
	}
	return data, err
}

func (c *Client) fetchBytes(ctx context.Context, cid string) ([]byte, error) {
	if err := ValidateCID(cid); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodGet, imagePath+cid, "", nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve image %s", cid)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(toStatusError(resp.StatusCode, body), "failed to retrieve image %s", cid)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	resp, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		err := toStatusError(resp.StatusCode, respBody)
		c.log.WithError(err).WithField("path", path).Debug("ipfs server request failed")
		return err
	}

	return json.Unmarshal(respBody, out)
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	if len(contentType) > 0 {
		req.Header.Set("Content-Type", contentType)
	}

	return c.client.Do(req)
}

type serverError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toStatusError(status int, body []byte) error {
	var parsed serverError
	_ = json.Unmarshal(body, &parsed)

	detail := parsed.Message
	if len(detail) == 0 {
		detail = parsed.Error
	}

	switch status {
	case http.StatusUnauthorized:
		return errors.Wrap(ErrUnauthorized, detail)
	case http.StatusNotFound:
		return errors.Wrap(ErrNotFound, detail)
	}

	if len(detail) == 0 {
		return fmt.Errorf("unexpected http status code: %d", status)
	}
	return fmt.Errorf("unexpected http status code: %d: %s", status, detail)
}

func newMultipartBody(fields map[string]string, image []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("image", "upload.jpg")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// isEmptyJSON matches what the server rejects: null and objects without keys.
func isEmptyJSON(encoded []byte) bool {
	trimmed := bytes.TrimSpace(encoded)
	return bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}
