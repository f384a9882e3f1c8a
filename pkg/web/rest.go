package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/dogeorg/wifid/pkg/conductor"
	"github.com/dogeorg/wifid/pkg/metrics"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func RESTAPI(
	config wifid.ServerConfig,
	nm wifid.NetworkManager,
	ifaces wifid.InterfaceLister,
	m *metrics.Registry,
	log logrus.FieldLogger,
) conductor.Service {
	return newAPI(config, nm, ifaces, m, log)
}

type api struct {
	mux     *http.ServeMux
	config  wifid.ServerConfig
	nm      wifid.NetworkManager
	ifaces  wifid.InterfaceLister
	metrics *metrics.Registry
	log     logrus.FieldLogger
}

func newAPI(
	config wifid.ServerConfig,
	nm wifid.NetworkManager,
	ifaces wifid.InterfaceLister,
	m *metrics.Registry,
	log logrus.FieldLogger,
) api {
	a := api{
		mux:     http.NewServeMux(),
		config:  config,
		nm:      nm,
		ifaces:  ifaces,
		metrics: m,
		log:     log,
	}

	routes := map[string]http.HandlerFunc{
		"GET /healthz":             a.getHealth,
		"GET /api/wifi/scan":       a.scanNetworks,
		"POST /api/wifi/connect":   a.connectNetwork,
		"GET /api/wifi/interfaces": a.getInterfaces,
		"GET /metrics":             m.Handler().ServeHTTP,
	}

	for p, h := range routes {
		a.mux.Handle(p, a.accessLog(p, h))
	}

	ui, err := serveSPA(config.UiDir, "index.html")
	if err != nil {
		log.WithError(err).Error("Could not load UI, serving API only")
	} else {
		a.mux.Handle("GET /", ui)
	}

	log.Debugf("Loaded %d API routes", len(routes))
	return a
}

func (t api) handler() http.Handler {
	return cors.AllowAll().Handler(t.mux)
}

func (t api) getHealth(w http.ResponseWriter, r *http.Request) {
	sendResponse(w, wifid.HealthStatus{
		OK: true,
		TS: float64(time.Now().UnixNano()) / float64(time.Second),
	})
}

func (t api) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		srv := &http.Server{
			Addr:              t.config.Addr(),
			Handler:           t.handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				t.log.Fatalf("HTTP server public ListenAndServe: %v", err)
			}
		}()

		t.log.Infof("UI http://%s  WIFI_IFACE=%s", t.config.Addr(), t.config.InterfaceOrAuto())
		started <- true
		ctx := <-stop
		srv.Shutdown(ctx)
		stopped <- true
	}()
	return nil
}
