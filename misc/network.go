package misc

import (
	"net"

	"github.com/BrugadaSyndrome/bslogger"
)

func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}

	port := l.Addr().(*net.TCPAddr).Port

	err = l.Close()
	if err != nil {
		return 0, err
	}

	return port, nil
}

// GetLocalAddress finds the first IPv4 address on an interface that is up and
// not loopback. Machines without one get the loopback address.
func GetLocalAddress() string {
	logger := bslogger.NewLogger("Network", bslogger.Normal, nil)

	networkInterfaces, err := net.Interfaces()
	if err != nil {
		logger.Warning("Failed to list network interfaces on this device, using loopback")
		return "127.0.0.1"
	}

	for _, elt := range networkInterfaces {
		if elt.Flags&net.FlagLoopback != 0 || elt.Flags&net.FlagUp == 0 {
			continue
		}
		address, err := elt.Addrs()
		if err != nil {
			logger.Warning("Failed to get an address from network interface " + elt.Name)
			continue
		}

		for _, addr := range address {
			if ip, ok := addr.(*net.IPNet); ok {
				if ip4 := ip.IP.To4(); len(ip4) == net.IPv4len {
					return ip4.String()
				}
			}
		}
	}

	logger.Warning("Failed to find a non-loopback interface with a valid address, using loopback")
	return "127.0.0.1"
}
