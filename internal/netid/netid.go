// Package netid derives a bounded node identifier from the host's network
// interfaces, for generators that need a stable per-process identity without
// an external coordinator.
package netid

import "net"

// fallbackID is returned when no usable interface can be found.
const fallbackID = 1

// Discover walks the local network interfaces in order, skips loopback and
// interfaces that are down, and returns the first IPv4 address found masked
// to the given bit width. If no interface yields an address, it falls back
// to 1 rather than failing generator construction.
func Discover(width uint) uint32 {
	ifaces, err := net.Interfaces()
	if err != nil {
		return fallbackID
	}

	mask := uint32(1)<<width - 1

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ip := extractIPv4(addr)
			if ip == nil {
				continue
			}
			value := uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
			return value & mask
		}
	}

	return fallbackID
}

func extractIPv4(addr net.Addr) net.IP {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	default:
		return nil
	}
	return ip.To4()
}
