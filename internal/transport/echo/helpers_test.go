package echo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"sync"
	"testing"

	"media-gateway/config"
	"media-gateway/internal/infra/s3"
	"media-gateway/pkg/metrics"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type memObject struct {
	data        []byte
	contentType string
}

// memStore is an in-memory ObjectStore with last-write-wins semantics.
type memStore struct {
	mu        sync.Mutex
	objects   map[string]memObject
	calls     int
	putErr    error
	listErr   error
	truncated bool
	// failAfter > 0 makes GetObject bodies fail after that many bytes.
	failAfter int
	// ctxBody makes GetObject bodies fail with the request context's error.
	ctxBody bool
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string]memObject)}
}

func (m *memStore) Bucket() string { return "test-bucket" }

func (m *memStore) PutObject(ctx context.Context, key, contentType string, body io.ReadSeeker, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.putErr != nil {
		return m.putErr
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = memObject{data: data, contentType: contentType}
	return nil
}

func (m *memStore) ListObjects(ctx context.Context) (*s3.ObjectListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.listErr != nil {
		return nil, m.listErr
	}

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	listing := &s3.ObjectListing{Objects: make([]s3.ObjectSummary, 0, len(keys)), Truncated: m.truncated}
	for _, k := range keys {
		listing.Objects = append(listing.Objects, s3.ObjectSummary{Key: k, Size: int64(len(m.objects[k].data))})
	}
	return listing, nil
}

func (m *memStore) GetObject(ctx context.Context, key, byteRange string) (*s3.ObjectStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("failed to get object %q: NoSuchKey: The specified key does not exist.", key)
	}

	data := obj.data
	contentRange := ""
	if byteRange != "" {
		var start, end int
		if _, err := fmt.Sscanf(byteRange, "bytes=%d-%d", &start, &end); err == nil && end < len(data) {
			contentRange = fmt.Sprintf("bytes %d-%d/%d", start, end, len(data))
			data = data[start : end+1]
		}
	}

	var body io.Reader = bytes.NewReader(data)
	switch {
	case m.ctxBody:
		body = ctxReader{ctx: ctx}
	case m.failAfter > 0:
		body = io.MultiReader(bytes.NewReader(data[:m.failAfter]), failingReader{})
	}

	return &s3.ObjectStream{
		Body:          io.NopCloser(body),
		ContentType:   obj.contentType,
		ContentLength: int64(len(data)),
		ContentRange:  contentRange,
	}, nil
}

func (m *memStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset by object store")
}

type ctxReader struct {
	ctx context.Context
}

func (r ctxReader) Read([]byte) (int, error) {
	<-r.ctx.Done()
	return 0, r.ctx.Err()
}

func testDependencies(store ObjectStore) *Dependencies {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &Dependencies{
		Config:  &config.Config{Server: config.ServerConfig{Port: "5000"}},
		Store:   store,
		Logger:  log,
		Metrics: metrics.New(),
	}
}

func newTestGateway(t *testing.T) (*Server, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewGatewayServer(testDependencies(store)), store
}

func serve(s http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func newUploadRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func scrapeMetrics(t *testing.T, s http.Handler) string {
	t.Helper()
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
