package conductor

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/sirupsen/logrus"
)

// A Service is started by the Conductor. Run must return promptly,
// do its work in a goroutine, send on started once it is serving and
// on stopped once it has shut down after receiving from stop.
type Service interface {
	Run(started, stopped chan bool, stop chan context.Context) error
}

type Option func(*Conductor)

// HookSignals stops all services on SIGINT or SIGTERM.
func HookSignals() Option {
	return func(c *Conductor) { c.hookSignals = true }
}

// Noisy logs every service start and stop at info level.
func Noisy() Option {
	return func(c *Conductor) { c.noisy = true }
}

// SystemdNotify tells systemd (Type=notify) when all services are up
// and when shutdown begins. A no-op outside systemd.
func SystemdNotify() Option {
	return func(c *Conductor) { c.notify = true }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Conductor) { c.log = log }
}

func ShutdownTimeout(d time.Duration) Option {
	return func(c *Conductor) { c.shutdownTimeout = d }
}

type service struct {
	name    string
	svc     Service
	stopped chan bool
	stop    chan context.Context
}

type Conductor struct {
	services        []*service
	hookSignals     bool
	noisy           bool
	notify          bool
	shutdownTimeout time.Duration
	log             logrus.FieldLogger
	stopReq         chan struct{}
}

func NewConductor(opts ...Option) *Conductor {
	c := &Conductor{
		shutdownTimeout: 10 * time.Second,
		log:             logrus.StandardLogger(),
		stopReq:         make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Conductor) Service(name string, s Service) {
	c.services = append(c.services, &service{name: name, svc: s})
}

// Start runs every service in registration order and returns a
// channel that is closed once they have all stopped again.
func (c *Conductor) Start() chan bool {
	done := make(chan bool)

	go func() {
		defer close(done)

		running, err := c.startAll()
		if err != nil {
			c.log.WithError(err).Error("startup failed")
			c.stopAll(running)
			return
		}
		c.sdNotify(daemon.SdNotifyReady)

		var sig chan os.Signal
		if c.hookSignals {
			sig = make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sig)
		}

		select {
		case s := <-sig:
			c.log.Infof("Received %s, shutting down", s)
		case <-c.stopReq:
		}

		c.sdNotify(daemon.SdNotifyStopping)
		c.stopAll(running)
	}()

	return done
}

// Stop asks a started Conductor to shut everything down.
func (c *Conductor) Stop() {
	select {
	case c.stopReq <- struct{}{}:
	default:
	}
}

func (c *Conductor) startAll() ([]*service, error) {
	running := []*service{}
	for _, s := range c.services {
		started := make(chan bool, 1)
		s.stopped = make(chan bool, 1)
		s.stop = make(chan context.Context, 1)

		if err := s.svc.Run(started, s.stopped, s.stop); err != nil {
			return running, fmt.Errorf("service %s: %w", s.name, err)
		}
		<-started
		running = append(running, s)
		c.logf("Started %s", s.name)
	}
	return running, nil
}

// Services are stopped in reverse start order.
func (c *Conductor) stopAll(running []*service) {
	for i := len(running) - 1; i >= 0; i-- {
		s := running[i]
		ctx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout)
		s.stop <- ctx
		select {
		case <-s.stopped:
			c.logf("Stopped %s", s.name)
		case <-ctx.Done():
			c.log.Warnf("Gave up waiting for %s to stop", s.name)
		}
		cancel()
	}
}

func (c *Conductor) logf(format string, args ...any) {
	if c.noisy {
		c.log.Infof(format, args...)
	} else {
		c.log.Debugf(format, args...)
	}
}

func (c *Conductor) sdNotify(state string) {
	if !c.notify {
		return
	}
	if _, err := daemon.SdNotify(false, state); err != nil {
		c.log.WithError(err).Warn("sd_notify failed")
	}
}
