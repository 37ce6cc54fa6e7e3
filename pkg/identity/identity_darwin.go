//go:build darwin

package identity

import "net"

// primaryInterfaceAddress returns the IPv4 dotted-quad bound to en0, the
// conventional primary ethernet interface on Darwin. This is the one
// platform-specific carve-out the spec calls for (§4.2, §9): mixed-platform
// fleets end up with sentinel filenames in two distinct namespaces under the
// same rendezvous directory, which is intentional and left unchanged here.
func primaryInterfaceAddress() (string, bool) {
	iface, err := net.InterfaceByName("en0")
	if err != nil {
		return "", false
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return "", false
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ipv4 := ipNet.IP.To4()
		if ipv4 != nil {
			return ipv4.String(), true
		}
	}

	return "", false
}
