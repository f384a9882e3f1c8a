package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/dogeorg/wifid/pkg/metrics"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNetworkManager implements wifid.NetworkManager for testing
type MockNetworkManager struct {
	mock.Mock
}

func (m *MockNetworkManager) Scan(ctx context.Context, rescan bool) ([]wifid.NetworkRecord, error) {
	args := m.Called(ctx, rescan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wifid.NetworkRecord), args.Error(1)
}

func (m *MockNetworkManager) Connect(ctx context.Context, req wifid.ConnectRequest) (wifid.ConnectResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(wifid.ConnectResult), args.Error(1)
}

// MockInterfaceLister implements wifid.InterfaceLister for testing
type MockInterfaceLister struct {
	mock.Mock
}

func (m *MockInterfaceLister) WirelessInterfaces() ([]wifid.WirelessInterface, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wifid.WirelessInterface), args.Error(1)
}

func intp(i int) *int       { return &i }
func strp(s string) *string { return &s }

type testAPI struct {
	nm      *MockNetworkManager
	ifaces  *MockInterfaceLister
	metrics *metrics.Registry
	handler http.Handler
}

func newTestAPI(t *testing.T, config wifid.ServerConfig) testAPI {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	ta := testAPI{
		nm:      new(MockNetworkManager),
		ifaces:  new(MockInterfaceLister),
		metrics: metrics.New(),
	}
	ta.handler = newAPI(config, ta.nm, ta.ifaces, ta.metrics, log).handler()
	return ta
}

func (ta testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	before := float64(time.Now().Unix())

	rr := ta.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	ts, ok := body["ts"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, ts, before)
}

func TestScanHandler(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	ta.nm.On("Scan", mock.Anything, false).Return([]wifid.NetworkRecord{
		{Ssid: "My:Network", Security: "WPA2", Signal: intp(87), Iface: strp("wlan0")},
		{Ssid: "", Security: "--", Signal: nil, Iface: nil},
	}, nil).Once()

	rr := ta.do(http.MethodGet, "/api/wifi/scan", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"ssid":"My:Network","security":"WPA2","signal":87,"iface":"wlan0"},
		{"ssid":"","security":"--","signal":null,"iface":null}
	]`, rr.Body.String())
	ta.nm.AssertExpectations(t)
}

func TestScanHandlerRescan(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	ta.nm.On("Scan", mock.Anything, true).Return([]wifid.NetworkRecord{}, nil).Once()

	rr := ta.do(http.MethodGet, "/api/wifi/scan?rescan=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	ta.nm.AssertExpectations(t)
}

func TestScanHandlerEmpty(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	ta.nm.On("Scan", mock.Anything, false).Return(nil, nil).Once()

	rr := ta.do(http.MethodGet, "/api/wifi/scan", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestScanHandlerFailure(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	ta.nm.On("Scan", mock.Anything, false).
		Return(nil, &wifid.ExternalToolError{Command: "scan", Stderr: "Error: NetworkManager is not running.\n", ExitCode: 8}).Once()

	rr := ta.do(http.MethodGet, "/api/wifi/scan", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Error: NetworkManager is not running."}`, rr.Body.String())
}

func TestConnectHandlerSsidRequired(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())

	for _, body := range []string{`{}`, `{"password":"x"}`, `{"ssid":""}`, ``, `not json`, `{"ssid":42}`} {
		rr := ta.do(http.MethodPost, "/api/wifi/connect", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
		assert.Equal(t, `{"error":"ssid required"}`, rr.Body.String(), "body %q", body)
	}
	ta.nm.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
}

func TestConnectHandler(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	ta.nm.On("Connect", mock.Anything, wifid.ConnectRequest{Ssid: "HomeNet", Password: "hunter2"}).
		Return(wifid.ConnectResult{OK: true, Iface: strp("wlan0"), IP: strp("192.168.1.23")}, nil).Once()

	rr := ta.do(http.MethodPost, "/api/wifi/connect", `{"ssid":"HomeNet","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"iface":"wlan0","ip":"192.168.1.23"}`, rr.Body.String())
	ta.nm.AssertExpectations(t)
}

func TestConnectHandlerNullDetails(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	ta.nm.On("Connect", mock.Anything, wifid.ConnectRequest{Ssid: "Cafe"}).
		Return(wifid.ConnectResult{OK: true}, nil).Once()

	rr := ta.do(http.MethodPost, "/api/wifi/connect", `{"ssid":"Cafe"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"iface":null,"ip":null}`, rr.Body.String())
}

func TestConnectHandlerToolFailure(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	ta.nm.On("Connect", mock.Anything, mock.Anything).Return(wifid.ConnectResult{}, &wifid.ExternalToolError{
		Command:  "connect",
		Stderr:   "Error: No network with SSID 'Nope' found.",
		ExitCode: 10,
	}).Once()

	rr := ta.do(http.MethodPost, "/api/wifi/connect", `{"ssid":"Nope"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Error: No network with SSID 'Nope' found."}`, rr.Body.String())
}

func TestConnectHandlerRejectsOtherMethods(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	rr := ta.do(http.MethodDelete, "/api/wifi/connect", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInterfacesHandler(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	ta.ifaces.On("WirelessInterfaces").Return([]wifid.WirelessInterface{
		{Name: "wlan0", HardwareAddr: "00:11:22:33:44:55", PHY: 0},
	}, nil).Once()

	rr := ta.do(http.MethodGet, "/api/wifi/interfaces", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"name":"wlan0","hardwareAddr":"00:11:22:33:44:55","phy":0}]`, rr.Body.String())

	ta.ifaces.On("WirelessInterfaces").Return(nil, errors.New("could not init a wifi interface client: not supported")).Once()
	rr = ta.do(http.MethodGet, "/api/wifi/interfaces", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "not supported")
}

func TestRequestIDAndMetrics(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())

	rr := ta.do(http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(requestIDHeader))

	rr = ta.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `wifid_http_requests_total{code="200",route="GET /healthz"} 2`)
}

func TestCORS(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://192.168.4.1")
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestEmbeddedUI(t *testing.T) {
	ta := newTestAPI(t, wifid.DefaultServerConfig())

	rr := ta.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/wifi/scan")
	assert.Contains(t, rr.Header().Get("Cache-Control"), "no-store")

	rr = ta.do(http.MethodGet, "/some/client/route", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Wi-Fi setup")
}

func TestUIDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>custom</h1>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('hi')"), 0644))

	config := wifid.DefaultServerConfig()
	config.UiDir = dir
	ta := newTestAPI(t, config)

	rr := ta.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<h1>custom</h1>", rr.Body.String())

	rr = ta.do(http.MethodGet, "/app.js", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "console.log('hi')", rr.Body.String())

	rr = ta.do(http.MethodGet, "/missing.css", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<h1>custom</h1>", rr.Body.String())
}

func TestMissingUIDirectoryServesAPIOnly(t *testing.T) {
	config := wifid.DefaultServerConfig()
	config.UiDir = filepath.Join(t.TempDir(), "nope")
	ta := newTestAPI(t, config)

	rr := ta.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ta.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}
