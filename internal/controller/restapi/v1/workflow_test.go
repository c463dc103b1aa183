package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andreyxaxa/Image-To-3D/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/andreyxaxa/Image-To-3D/internal/infrastructure/converter"
	"github.com/andreyxaxa/Image-To-3D/internal/infrastructure/preview"
	"github.com/andreyxaxa/Image-To-3D/internal/repo/memory"
	"github.com/andreyxaxa/Image-To-3D/internal/usecase/presenter"
	"github.com/andreyxaxa/Image-To-3D/internal/usecase/selector"
	"github.com/andreyxaxa/Image-To-3D/internal/usecase/workflow"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const (
	_cookieName = "session_id"
	_token      = "anon-key"
)

type harness struct {
	app      *fiber.App
	assets   *memory.AssetRepo
	sessions *workflow.Registry
	calls    *atomic.Int32
}

// newHarness wires the real use cases against a fake conversion service.
func newHarness(t *testing.T, service http.HandlerFunc) *harness {
	t.Helper()

	return newLimitedHarness(t, service, nil)
}

func newLimitedHarness(t *testing.T, service http.HandlerFunc, limiter *rate.Limiter) *harness {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		service(w, r)
	}))
	t.Cleanup(srv.Close)

	l := logger.NewNop()
	assets := memory.NewAssetRepo()
	sessions := workflow.NewRegistry(converter.New(srv.URL, _token), assets, time.Hour, l)
	t.Cleanup(sessions.CloseAll)

	app := fiber.New()
	NewWorkflowRoutes(
		app.Group("/v1"),
		sessions,
		selector.New(preview.New(64, 64), 2*1024*1024, l),
		presenter.New(assets, "https://cdn.test/model-viewer.min.js", "/v1"),
		l,
		_cookieName,
		5*time.Second,
		limiter,
	)

	return &harness{app: app, assets: assets, sessions: sessions, calls: &calls}
}

// client keeps the session cookie between requests, as a browser would.
type client struct {
	t      *testing.T
	h      *harness
	cookie *http.Cookie
}

func (h *harness) client(t *testing.T) *client {
	return &client{t: t, h: h}
}

func (c *client) do(req *http.Request) (*http.Response, []byte) {
	c.t.Helper()

	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	resp, err := c.h.app.Test(req, -1)
	require.NoError(c.t, err)

	for _, ck := range resp.Cookies() {
		if ck.Name == _cookieName {
			c.cookie = ck
		}
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	resp.Body.Close()

	return resp, body
}

func (c *client) state() response.State {
	c.t.Helper()

	resp, body := c.do(httptest.NewRequest(http.MethodGet, "/v1/state", nil))
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	return decodeState(c.t, body)
}

func (c *client) upload(name, contentType string, data []byte) (*http.Response, []byte) {
	c.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(c.t, err)
	_, err = part.Write(data)
	require.NoError(c.t, err)
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req)
}

func (c *client) convert(wait bool) (*http.Response, []byte) {
	c.t.Helper()

	url := "/v1/convert"
	if wait {
		url += "?wait=true"
	}

	return c.do(httptest.NewRequest(http.MethodPost, url, nil))
}

func decodeState(t *testing.T, body []byte) response.State {
	t.Helper()

	var s response.State
	require.NoError(t, json.Unmarshal(body, &s), string(body))

	return s
}

func catJPEG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for x := 0; x < 120; x++ {
		img.Set(x, 40, color.RGBA{G: 180, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

func glbPayload(size int) []byte {
	b := make([]byte, size)
	copy(b, "glTF")
	for i := 4; i < size; i++ {
		b[i] = byte(i % 251)
	}

	return b
}

func TestWorkflow_CatToModel(t *testing.T) {
	model := glbPayload(1_200_000)

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+_token, r.Header.Get("Authorization"))

		_, header, err := r.FormFile("image")
		if assert.NoError(t, err) {
			assert.Equal(t, "cat.jpg", header.Filename)
		}

		w.Header().Set("Content-Type", "model/gltf-binary")
		_, _ = w.Write(model)
	})
	c := h.client(t)

	assert.Equal(t, "idle", c.state().State)
	require.NotNil(t, c.cookie, "session cookie issued")

	// select
	resp, body := c.upload("cat.jpg", "image/jpeg", catJPEG(t))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	s := decodeState(t, body)
	assert.Equal(t, "image_selected", s.State)
	require.NotNil(t, s.Image)
	assert.Equal(t, "cat.jpg", s.Image.Name)
	assert.Equal(t, "image/jpeg", s.Image.ContentType)
	assert.Contains(t, s.Image.Preview, "data:image/jpeg;base64,")

	// convert
	resp, body = c.convert(true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	s = decodeState(t, body)
	assert.Equal(t, "ready", s.State)
	require.NotNil(t, s.Model)
	assert.Equal(t, int64(len(model)), s.Model.Size)
	assert.Equal(t, "/v1/model/"+s.Model.ID, s.Model.View.AssetURL)
	assert.Equal(t, "https://cdn.test/model-viewer.min.js", s.Model.View.ScriptURL)
	assert.Contains(t, s.Notices, entity.ConvertedNotice())

	// presenter shows the model
	resp, body = c.do(httptest.NewRequest(http.MethodGet, s.Model.View.AssetURL, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "model/gltf-binary", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, model, body)

	// download
	resp, body = c.do(httptest.NewRequest(http.MethodGet, s.Model.View.DownloadURL, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="model.glb"`, resp.Header.Get(fiber.HeaderContentDisposition))
	assert.Equal(t, model, body)

	assert.Equal(t, int32(1), h.calls.Load(), "viewing and downloading make no network call")

	s = c.state()
	assert.Equal(t, "ready", s.State)
	assert.Equal(t, []entity.Notice{entity.DownloadedNotice()}, s.Notices)
}

func TestWorkflow_UnsupportedType(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {})
	c := h.client(t)

	resp, _ := c.upload("notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	s := c.state()
	assert.Equal(t, "idle", s.State)
	assert.Nil(t, s.Image)
	assert.Equal(t, []entity.Notice{entity.UnsupportedTypeNotice()}, s.Notices)
}

func TestWorkflow_UnsupportedTypeKeepsSelection(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {})
	c := h.client(t)

	resp, _ := c.upload("cat.jpg", "image/jpeg", catJPEG(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = c.upload("movie.mp4", "video/mp4", []byte("mp4"))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	s := c.state()
	assert.Equal(t, "image_selected", s.State)
	assert.Equal(t, "cat.jpg", s.Image.Name)
}

func TestWorkflow_UploadErrors(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {})
	c := h.client(t)

	resp, _ := c.upload("empty.png", "image/png", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = c.upload("huge.png", "image/png", make([]byte, 2*1024*1024+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, _ = c.do(httptest.NewRequest(http.MethodPost, "/v1/image", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, "idle", c.state().State)
}

func TestWorkflow_ConvertWithoutImage(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {})
	c := h.client(t)

	resp, body := c.convert(false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e response.Error
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "no image selected", e.Error)

	s := c.state()
	assert.Equal(t, "idle", s.State)
	assert.Equal(t, []entity.Notice{entity.MissingImageNotice()}, s.Notices)
	assert.Zero(t, h.calls.Load())
}

func TestWorkflow_ConversionFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{name: "server message", status: http.StatusInternalServerError, body: `{"error":"model overloaded"}`, reason: "model overloaded"},
		{name: "no parsable body", status: http.StatusInternalServerError, body: `Internal Server Error`, reason: "Conversion failed"},
		{name: "empty model", status: http.StatusOK, body: ``, reason: "Conversion failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			c := h.client(t)

			resp, _ := c.upload("cat.jpg", "image/jpeg", catJPEG(t))
			require.Equal(t, http.StatusOK, resp.StatusCode)

			resp, body := c.convert(true)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			s := decodeState(t, body)
			assert.Equal(t, "failed", s.State)
			assert.Equal(t, tc.reason, s.Reason)
			assert.Nil(t, s.Model)
			assert.Equal(t, []entity.Notice{entity.ConversionFailedNotice(tc.reason)}, s.Notices)
		})
	}
}

func TestWorkflow_ConvertingGatesResubmission(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte("glTF"))
	})
	c := h.client(t)

	resp, _ := c.upload("cat.jpg", "image/jpeg", catJPEG(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := c.convert(false)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "converting", decodeState(t, body).State)

	resp, _ = c.convert(false)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = c.upload("dog.jpg", "image/jpeg", catJPEG(t))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	assert.Equal(t, "converting", c.state().State)

	close(release)

	assert.Eventually(t, func() bool {
		return c.state().State == "ready"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), h.calls.Load())
}

func TestWorkflow_ConversionRateLimit(t *testing.T) {
	h := newLimitedHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("glTF"))
	}, rate.NewLimiter(rate.Every(time.Hour), 1))
	c := h.client(t)

	resp, _ := c.upload("cat.jpg", "image/jpeg", catJPEG(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = c.convert(true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := c.convert(true)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var e response.Error
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "too many conversions, please try again", e.Error)

	assert.Equal(t, "ready", c.state().State)
	assert.Equal(t, int32(1), h.calls.Load())
}

func TestWorkflow_ClearReleasesModel(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("glTF-model"))
	})
	c := h.client(t)

	c.upload("cat.jpg", "image/jpeg", catJPEG(t))
	_, body := c.convert(true)
	s := decodeState(t, body)
	require.Equal(t, "ready", s.State)
	require.Equal(t, 1, h.assets.Len())

	resp, body := c.do(httptest.NewRequest(http.MethodDelete, "/v1/image", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := decodeState(t, body)
	assert.Equal(t, "idle", cleared.State)
	assert.Nil(t, cleared.Image)
	assert.Nil(t, cleared.Model)
	assert.Equal(t, 0, h.assets.Len())

	resp, _ = c.do(httptest.NewRequest(http.MethodGet, s.Model.View.AssetURL, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = c.do(httptest.NewRequest(http.MethodGet, s.Model.View.DownloadURL, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWorkflow_ModelIsPrivateToSession(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("glTF-model"))
	})
	owner := h.client(t)
	other := h.client(t)

	owner.upload("cat.jpg", "image/jpeg", catJPEG(t))
	_, body := owner.convert(true)
	s := decodeState(t, body)
	require.Equal(t, "ready", s.State)

	other.state()
	resp, _ := other.do(httptest.NewRequest(http.MethodGet, s.Model.View.AssetURL, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = other.do(httptest.NewRequest(http.MethodGet, "/v1/model/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, 2, h.sessions.Len())
}

func TestWorkflow_ShowUI(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {})
	c := h.client(t)

	resp, body := c.do(httptest.NewRequest(http.MethodGet, "/v1/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, string(body), "Image to 3D Converter")
	assert.Regexp(t, `const base = "\\?/v1";`, string(body))
	assert.NotNil(t, c.cookie)
}
