// Package announce advertises a running zy server on the local network with
// multicast DNS (DNS-SD).
//
// Each distinct listen port is registered as an "_http._tcp" service in the
// "local." domain with TXT records:
//
//	path=/
//	version=<zy version>
//
// Loopback listeners are skipped. Wildcard and LAN addresses are announced
// on every interface.
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Firewall must allow mDNS (UDP port 5353)
package announce
