package announce

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/zy/internal/version"
)

const (
	// ServiceType is the DNS-SD type browsers and tools look for
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."
)

// Service is one advertisement.
type Service struct {
	Instance string
	Port     int
	Text     []string
}

// registerFunc matches zeroconf.Register.
type registerFunc func(instance, service, domain string, port int, text []string, ifaces []net.Interface) (*zeroconf.Server, error)

// Announcer advertises the listening server over mDNS until Shutdown.
type Announcer struct {
	log      *zap.Logger
	register registerFunc

	mu      sync.Mutex
	servers []*zeroconf.Server
}

// New creates an Announcer. Nothing is advertised until Start.
func New(log *zap.Logger) *Announcer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Announcer{log: log, register: zeroconf.Register}
}

// DefaultInstance names the service after the host, e.g. "zy on devbox".
func DefaultInstance() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return version.Product
	}
	return fmt.Sprintf("%s on %s", version.Product, host)
}

// Services builds one advertisement per distinct TCP port in addrs.
// Loopback listeners are not reachable from the network and are skipped.
func Services(instance string, addrs []net.Addr) []Service {
	seen := make(map[int]bool)
	var services []Service

	for _, addr := range addrs {
		tcp, ok := addr.(*net.TCPAddr)
		if !ok || tcp.Port == 0 || tcp.IP.IsLoopback() || seen[tcp.Port] {
			continue
		}
		seen[tcp.Port] = true
		services = append(services, Service{
			Instance: instance,
			Port:     tcp.Port,
			Text:     []string{"path=/", "version=" + version.Version},
		})
	}
	return services
}

// Start registers a service for every advertisable address. If one
// registration fails, the ones already made are withdrawn.
func (a *Announcer) Start(instance string, addrs []net.Addr) error {
	services := Services(instance, addrs)
	if len(services) == 0 {
		a.log.Warn("No network-reachable listen address, skipping mDNS")
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, svc := range services {
		server, err := a.register(svc.Instance, ServiceType, ServiceDomain, svc.Port, svc.Text, nil)
		if err != nil {
			a.shutdownLocked()
			return fmt.Errorf("failed to register mDNS service on port %d: %w", svc.Port, err)
		}
		if server != nil {
			a.servers = append(a.servers, server)
		}
		a.log.Info("Advertising via mDNS",
			zap.String("instance", svc.Instance),
			zap.String("service", ServiceType),
			zap.Int("port", svc.Port),
		)
	}
	return nil
}

// Shutdown withdraws every advertisement.
func (a *Announcer) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdownLocked()
}

func (a *Announcer) shutdownLocked() {
	for _, s := range a.servers {
		s.Shutdown()
	}
	a.servers = nil
}
