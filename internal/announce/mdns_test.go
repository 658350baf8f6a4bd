package announce

import (
	"errors"
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/zy/internal/version"
)

func tcpAddr(ip string, port int) net.Addr {
	return &net.TCPAddr{IP: net.ParseIP(ip), Port: port}
}

func TestServices(t *testing.T) {
	tests := []struct {
		name      string
		addrs     []net.Addr
		wantPorts []int
	}{
		{
			name:      "wildcard IPv4",
			addrs:     []net.Addr{tcpAddr("0.0.0.0", 3000)},
			wantPorts: []int{3000},
		},
		{
			name:      "loopback skipped",
			addrs:     []net.Addr{tcpAddr("127.0.0.1", 3000), tcpAddr("::1", 3000)},
			wantPorts: nil,
		},
		{
			name:      "same port on two addresses",
			addrs:     []net.Addr{tcpAddr("192.168.1.10", 8080), tcpAddr("::", 8080)},
			wantPorts: []int{8080},
		},
		{
			name:      "distinct ports",
			addrs:     []net.Addr{tcpAddr("0.0.0.0", 8080), tcpAddr("127.0.0.1", 9000), tcpAddr("10.0.0.2", 9090)},
			wantPorts: []int{8080, 9090},
		},
		{
			name:      "non-TCP address",
			addrs:     []net.Addr{&net.UnixAddr{Name: "/tmp/zy.sock", Net: "unix"}},
			wantPorts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := Services("zy test", tt.addrs)

			var ports []int
			for _, s := range services {
				ports = append(ports, s.Port)
				assert.Equal(t, "zy test", s.Instance)
				assert.Equal(t, []string{"path=/", "version=" + version.Version}, s.Text)
			}
			assert.Equal(t, tt.wantPorts, ports)
		})
	}
}

type registration struct {
	instance, service, domain string
	port                      int
}

func TestAnnouncer_Start(t *testing.T) {
	var calls []registration
	a := New(nil)
	a.register = func(instance, service, domain string, port int, text []string, ifaces []net.Interface) (*zeroconf.Server, error) {
		calls = append(calls, registration{instance, service, domain, port})
		return nil, nil
	}

	err := a.Start("zy on box", []net.Addr{tcpAddr("0.0.0.0", 3000), tcpAddr("0.0.0.0", 3001)})
	require.NoError(t, err)

	assert.Equal(t, []registration{
		{"zy on box", ServiceType, ServiceDomain, 3000},
		{"zy on box", ServiceType, ServiceDomain, 3001},
	}, calls)

	a.Shutdown()
}

func TestAnnouncer_StartFailure(t *testing.T) {
	a := New(nil)
	a.register = func(instance, service, domain string, port int, text []string, ifaces []net.Interface) (*zeroconf.Server, error) {
		return nil, errors.New("no multicast interface")
	}

	err := a.Start("zy", []net.Addr{tcpAddr("0.0.0.0", 3000)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port 3000")
	assert.Empty(t, a.servers)
}

func TestAnnouncer_StartLoopbackOnly(t *testing.T) {
	a := New(nil)
	a.register = func(instance, service, domain string, port int, text []string, ifaces []net.Interface) (*zeroconf.Server, error) {
		t.Fatal("loopback listener must not be registered")
		return nil, nil
	}

	assert.NoError(t, a.Start("zy", []net.Addr{tcpAddr("127.0.0.1", 3000)}))
}

func TestDefaultInstance(t *testing.T) {
	assert.Contains(t, DefaultInstance(), version.Product)
}
