package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boxity/boxity/internal/auth"
	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/files"
	"github.com/boxity/boxity/internal/integrity"
	"github.com/boxity/boxity/internal/models"
	"github.com/boxity/boxity/internal/provenance"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const adminToken = "let-me-in"

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

type RouterTestSuite struct {
	suite.Suite

	config *config.Config
	server *httptest.Server
}

func (s *RouterTestSuite) SetupTest() {
	hash, err := auth.HashToken(adminToken)
	s.Require().NoError(err)

	s.config = config.Default()
	s.config.Admin.TokenHash = hash

	service := provenance.NewService(files.NewBatchStore(files.NewMemorySlot()))
	s.server = httptest.NewServer(NewRouter(s.config, service, integrity.StaticChecker{}))
}

func (s *RouterTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *RouterTestSuite) do(method, path string, body interface{}, token string) *http.Response {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *RouterTestSuite) decode(resp *http.Response, v interface{}) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *RouterTestSuite) errorOf(resp *http.Response) string {
	var e errorResponse
	s.decode(resp, &e)
	return e.Error
}

func (s *RouterTestSuite) TestHealthAndTime() {
	resp := s.do("GET", "/health", nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get(RequestIDHeader))

	resp = s.do("GET", "/time", nil, "")
	var out map[string]string
	s.decode(resp, &out)
	s.NotEmpty(out["time"])
}

func (s *RouterTestSuite) TestListAndGetBatches() {
	var batches []models.Batch
	s.decode(s.do("GET", "/batches", nil, ""), &batches)
	s.Equal(files.Fixtures(), batches)

	resp := s.do("GET", "/batches/CHT-002-XYZ", nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(provenance.SourceLocal, resp.Header.Get(SourceHeader))
	var b models.Batch
	s.decode(resp, &b)
	s.Equal("ColdVax", b.ProductName)

	resp = s.do("GET", "/batches/cht-002-xyz", nil, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(s.errorOf(resp), "batch not found")
}

func (s *RouterTestSuite) TestLogEvent() {
	resp := s.do("POST", "/batches/CHT-DEMO/events", provenance.EventInput{Actor: "WarehouseA", Role: "Warehouse", Note: "test"}, "")
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var e models.Event
	s.decode(resp, &e)
	s.Equal("WarehouseA", e.Actor)

	var b models.Batch
	s.decode(s.do("GET", "/batches/CHT-DEMO", nil, ""), &b)
	s.Len(b.Events, 3)

	resp = s.do("POST", "/batches/CHT-DEMO/events", provenance.EventInput{Actor: "WarehouseA"}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do("POST", "/batches/CHT-NOPE/events", provenance.EventInput{Actor: "a", Role: "Other", Note: "n"}, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *RouterTestSuite) TestCreateBatchRequiresAdmin() {
	in := provenance.BatchInput{ID: "CHT-900-ZZZ", ProductName: "Widget"}

	resp := s.do("POST", "/batches", in, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.do("POST", "/batches", in, adminToken)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var b models.Batch
	s.decode(resp, &b)
	s.Equal("CHT-900-ZZZ", b.ID)
	s.Equal(provenance.DefaultOrigin, b.Origin)

	resp = s.do("POST", "/batches", in, adminToken)
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp = s.do("POST", "/batches", provenance.BatchInput{}, adminToken)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Product name is required", s.errorOf(resp))
}

func (s *RouterTestSuite) TestResetDemo() {
	s.Equal(http.StatusCreated, s.do("POST", "/batches", provenance.BatchInput{ProductName: "Widget"}, adminToken).StatusCode)
	s.Equal(http.StatusUnauthorized, s.do("POST", "/demo/reset", nil, "").StatusCode)
	s.Equal(http.StatusNoContent, s.do("POST", "/demo/reset", nil, adminToken).StatusCode)

	var batches []models.Batch
	s.decode(s.do("GET", "/batches", nil, ""), &batches)
	s.Equal(files.Fixtures(), batches)
}

func (s *RouterTestSuite) TestScan() {
	resp := s.do("POST", "/scan", map[string]string{"text": "batchId=CHT-DEMO; role=Retailer"}, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var res provenance.ScanResult
	s.decode(resp, &res)
	s.Equal("CHT-DEMO", res.Fields.BatchID)
	s.Equal("Retailer", res.Fields.Role)

	resp = s.do("POST", "/scan", map[string]string{"text": "https://example.com"}, "")
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *RouterTestSuite) TestQRCodes() {
	for _, path := range []string{"/qr/test.png", "/batches/CHT-DEMO/qr.png"} {
		resp := s.do("GET", path, nil, "")
		s.Require().Equal(http.StatusOK, resp.StatusCode, path)
		s.Equal("image/png", resp.Header.Get("Content-Type"))
		img, err := png.Decode(resp.Body)
		s.Require().NoError(err, path)
		s.Positive(img.Bounds().Dx())
	}

	s.Equal(http.StatusNotFound, s.do("GET", "/batches/CHT-NOPE/qr.png", nil, "").StatusCode)
}

func (s *RouterTestSuite) TestIntegrityCheck() {
	body := map[string]string{
		"before": "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("before")),
		"after":  base64.StdEncoding.EncodeToString([]byte("after")),
	}
	resp := s.do("POST", "/integrity/check", body, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var out struct {
		Differences []models.Difference `json:"differences"`
	}
	s.decode(resp, &out)
	s.Len(out.Differences, 3)

	resp = s.do("POST", "/integrity/check", map[string]string{"before": body["before"]}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do("POST", "/integrity/check", map[string]string{"before": "%%%", "after": "%%%"}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *RouterTestSuite) TestMetricsAndUnknownRoutes() {
	s.do("GET", "/batches", nil, "")
	resp := s.do("GET", "/metrics", nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "http_requests_total")

	s.Equal(http.StatusNotFound, s.do("GET", "/nope", nil, "").StatusCode)
	s.Equal(http.StatusMethodNotAllowed, s.do("DELETE", "/batches", nil, "").StatusCode)
}

func (s *RouterTestSuite) TestIntegrityCheckRejectsOversizedBody() {
	s.config.Integrity.MaxImageSize = 16
	huge := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 8192))

	resp := s.do("POST", "/integrity/check", map[string]string{"before": huge, "after": huge}, "")
	s.Equal(http.StatusRequestEntityTooLarge, resp.StatusCode)
	s.Contains(s.errorOf(resp), "request body exceeds")
}

func TestDecodeImage(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("12345"))

	data, err := decodeImage("before", "data:image/jpeg;base64,"+raw, 10)
	require.NoError(t, err)
	require.Equal(t, []byte("12345"), data)

	data, err = decodeImage("before", "  ", 10)
	require.NoError(t, err)
	require.Nil(t, data)

	_, err = decodeImage("before", raw, 4)
	require.ErrorIs(t, err, provenance.ErrValidation)

	_, err = decodeImage("before", "data:image/png,plain", 10)
	require.ErrorIs(t, err, provenance.ErrValidation)
}
