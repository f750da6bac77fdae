// Package lan resolves the IPv4 address other devices on the local
// network can reach this host at.
package lan

import (
	"fmt"
	"net"

	"github.com/jackpal/gateway"
)

// fallbackAddr is a well-known external address used to pick a local
// endpoint. The socket is connectionless; no traffic is sent.
const fallbackAddr = "8.8.8.8:80"

// LocalIP returns the host's LAN-reachable IPv4 address. It first
// looks for the interface sharing a subnet with the default gateway,
// then falls back to the local endpoint of an unconnected UDP socket,
// and finally to loopback when the host has no usable network at all.
func LocalIP() string {
	if ip, err := gatewayLocalIP(); err == nil {
		return ip
	}
	if ip, err := dialLocalIP(); err == nil {
		return ip
	}
	return "127.0.0.1"
}

// gatewayLocalIP discovers the default gateway and returns the IPv4
// address of the interface on the gateway's subnet.
func gatewayLocalIP() (string, error) {
	gwIP, err := gateway.DiscoverGateway()
	if err != nil {
		return "", fmt.Errorf("discover gateway: %w", err)
	}

	interfaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}

			ipv4 := ipnet.IP.To4()
			if ipv4 == nil || !ipv4.IsGlobalUnicast() {
				continue
			}

			if ipnet.Contains(gwIP) {
				return ipv4.String(), nil
			}
		}
	}

	return "", fmt.Errorf("no local IPv4 address on the subnet of gateway %s", gwIP)
}

// dialLocalIP opens a connectionless UDP socket toward a well-known
// address and reads back the local endpoint the OS would route from.
func dialLocalIP() (string, error) {
	conn, err := net.Dial("udp4", fallbackAddr)
	if err != nil {
		return "", err
	}
	defer func() { _ = conn.Close() }()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || local.IP == nil {
		return "", fmt.Errorf("no local address on %s", conn.LocalAddr())
	}
	return local.IP.String(), nil
}
