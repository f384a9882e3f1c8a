package client

import (
	"fmt"
	"strconv"
	"time"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx reply from a wifid server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wifid returned %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to a running wifid over its REST API.
type Client struct {
	client *resty.Client
}

func New(baseURL string, timeout time.Duration) Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")
	client.SetContentLength(true)
	client.SetTimeout(timeout)

	return Client{client: client}
}

func (t Client) Health() (wifid.HealthStatus, error) {
	var result wifid.HealthStatus
	err := t.do(t.client.R().SetResult(&result), resty.MethodGet, "/healthz")
	return result, err
}

func (t Client) Scan(rescan bool) ([]wifid.NetworkRecord, error) {
	result := []wifid.NetworkRecord{}
	req := t.client.R().SetResult(&result)
	if rescan {
		req.SetQueryParam("rescan", strconv.FormatBool(rescan))
	}
	err := t.do(req, resty.MethodGet, "/api/wifi/scan")
	return result, err
}

func (t Client) Connect(r wifid.ConnectRequest) (wifid.ConnectResult, error) {
	var result wifid.ConnectResult
	err := t.do(t.client.R().SetBody(r).SetResult(&result), resty.MethodPost, "/api/wifi/connect")
	return result, err
}

func (t Client) Interfaces() ([]wifid.WirelessInterface, error) {
	result := []wifid.WirelessInterface{}
	err := t.do(t.client.R().SetResult(&result), resty.MethodGet, "/api/wifi/interfaces")
	return result, err
}

func (t Client) do(req *resty.Request, method, path string) error {
	var apiErr errorBody
	resp, err := req.SetError(&apiErr).Execute(method, path)
	if err != nil {
		return err
	}

	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = resp.String()
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
