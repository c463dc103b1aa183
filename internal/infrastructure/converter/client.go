package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/andreyxaxa/Image-To-3D/pkg/types/errs"
)

const (
	_defaultTimeout = 5 * time.Minute
	_defaultFormat  = "glb"

	_defaultMaxModelSize = 100 << 20

	_imageField = "image"
)

// formatContentTypes maps model formats to the media type served to viewers.
var formatContentTypes = map[string]string{
	"glb":  "model/gltf-binary",
	"gltf": "model/gltf+json",
	"obj":  "model/obj",
	"stl":  "model/stl",
	"usdz": "model/vnd.usdz+zip",
}

// Client sends one image to the conversion service per call. It never retries.
type Client struct {
	endpoint string
	token    string
	format   string
	http     *http.Client

	maxModelSize int64
}

func New(endpoint, token string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		token:    token,
		format:   _defaultFormat,
		http:     &http.Client{Timeout: _defaultTimeout},

		maxModelSize: _defaultMaxModelSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) Convert(ctx context.Context, image entity.SelectedImage) (entity.ConversionResult, error) {
	body, contentType, err := buildForm(image)
	if err != nil {
		return entity.ConversionResult{}, fmt.Errorf("Client - Convert - buildForm: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return entity.ConversionResult{}, fmt.Errorf("Client - Convert - http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.ConversionResult{}, fmt.Errorf("Client - Convert - c.http.Do: %w", &errs.TransportError{Err: err})
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, c.maxModelSize+1))
	if err != nil {
		return entity.ConversionResult{}, fmt.Errorf("Client - Convert - io.ReadAll: %w", &errs.TransportError{Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entity.ConversionResult{}, fmt.Errorf("Client - Convert - status %d: %w", resp.StatusCode, &errs.ConversionError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(payload),
		})
	}

	if len(payload) == 0 {
		return entity.ConversionResult{}, fmt.Errorf("Client - Convert - empty model: %w", &errs.ConversionError{StatusCode: resp.StatusCode})
	}
	if int64(len(payload)) > c.maxModelSize {
		return entity.ConversionResult{}, fmt.Errorf("Client - Convert - model exceeds %d bytes: %w", c.maxModelSize, &errs.ConversionError{StatusCode: resp.StatusCode})
	}

	return entity.ConversionResult{
		Data:        payload,
		ContentType: c.contentType(),
		Filename:    "model." + c.format,
	}, nil
}

func (c *Client) contentType() string {
	if ct, ok := formatContentTypes[c.format]; ok {
		return ct
	}

	return "application/octet-stream"
}

// serverMessage extracts the "error" field of a JSON failure body.
func serverMessage(payload []byte) string {
	var eb errorBody
	if err := json.Unmarshal(payload, &eb); err != nil {
		return ""
	}

	return strings.TrimSpace(eb.Error)
}

func buildForm(image entity.SelectedImage) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := image.Name
	if name == "" {
		name = "image"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, _imageField, escapeQuotes(name)))
	h.Set("Content-Type", image.ContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("buildForm - w.CreatePart: %w", err)
	}

	_, err = part.Write(image.Data)
	if err != nil {
		return nil, "", fmt.Errorf("buildForm - part.Write: %w", err)
	}

	err = w.Close()
	if err != nil {
		return nil, "", fmt.Errorf("buildForm - w.Close: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
