package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	wifid "github.com/dogeorg/wifid/pkg"
)

const maxBodyBytes = 64 << 10

func (t api) scanNetworks(w http.ResponseWriter, r *http.Request) {
	rescan, _ := strconv.ParseBool(r.URL.Query().Get("rescan"))

	networks, err := t.nm.Scan(r.Context(), rescan)
	if err != nil {
		t.log.WithError(err).Error("nmcli scan failed")
		sendErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if networks == nil {
		networks = []wifid.NetworkRecord{}
	}

	sendResponse(w, networks)
}

func (t api) connectNetwork(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "Error reading request body")
		return
	}
	defer r.Body.Close()

	// A body that isn't a JSON object is treated the same as one
	// without an ssid.
	var req wifid.ConnectRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Ssid == "" {
		sendErrorResponse(w, http.StatusBadRequest, wifid.ErrSSIDRequired.Error())
		return
	}

	result, err := t.nm.Connect(r.Context(), req)
	if err != nil {
		if errors.Is(err, wifid.ErrSSIDRequired) {
			sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		t.log.WithError(err).WithField("ssid", req.Ssid).Error("Failed to connect to network")
		sendErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	sendResponse(w, result)
}

func (t api) getInterfaces(w http.ResponseWriter, r *http.Request) {
	ifaces, err := t.ifaces.WirelessInterfaces()
	if err != nil {
		t.log.WithError(err).Error("Failed to list wireless interfaces")
		sendErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ifaces == nil {
		ifaces = []wifid.WirelessInterface{}
	}

	sendResponse(w, ifaces)
}
