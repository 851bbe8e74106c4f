package radio

import (
	"errors"
	"fmt"
	"net"
	"os/exec"

	"radiorecon/internal/models"

	"github.com/mdlayher/wifi"
)

// LinuxWifi drives a station interface through nl80211. Association uses the
// kernel's connect command, so WPA-PSK needs a driver with 4-way handshake
// offload. Scanning shells out to iwlist.
type LinuxWifi struct {
	iface  string
	client *wifi.Client

	scan func(iface string) ([]byte, error)
	link func(iface string, up bool) error
}

var (
	_ WifiRadio = (*LinuxWifi)(nil)
	_ Activator = (*LinuxWifi)(nil)
)

// NewLinuxWifi opens a nl80211 client bound to the named interface.
func NewLinuxWifi(iface string) (*LinuxWifi, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("open nl80211: %w: %v", models.ErrHardwareUnavailable, err)
	}
	return &LinuxWifi{
		iface:  iface,
		client: c,
		scan:   runIWList,
		link:   setLinkState,
	}, nil
}

// Close releases the netlink socket.
func (l *LinuxWifi) Close() error {
	return l.client.Close()
}

func (l *LinuxWifi) lookup() (*wifi.Interface, error) {
	ifis, err := l.client.Interfaces()
	if err != nil {
		return nil, err
	}
	for _, ifi := range ifis {
		if ifi.Name == l.iface {
			return ifi, nil
		}
	}
	return nil, fmt.Errorf("interface %s: %w", l.iface, models.ErrHardwareUnavailable)
}

func (l *LinuxWifi) Activate(on bool) error {
	return l.link(l.iface, on)
}

func (l *LinuxWifi) IsActive() bool {
	if _, err := l.lookup(); err != nil {
		return false
	}
	ni, err := net.InterfaceByName(l.iface)
	if err != nil {
		return false
	}
	return ni.Flags&net.FlagUp != 0
}

func (l *LinuxWifi) Scan() ([]models.WifiObservation, error) {
	out, err := l.scan(l.iface)
	if err != nil {
		return nil, fmt.Errorf("iwlist scan on %s: %w", l.iface, err)
	}
	return parseIWListOutput(string(out)), nil
}

func (l *LinuxWifi) Connect(ssid, password string) error {
	ifi, err := l.lookup()
	if err != nil {
		return err
	}
	if password == "" {
		err = l.client.Connect(ifi, ssid)
	} else {
		err = l.client.ConnectWPAPSK(ifi, ssid, password)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrConnection, err)
	}
	return nil
}

func (l *LinuxWifi) IsConnected() bool {
	ifi, err := l.lookup()
	if err != nil {
		return false
	}
	bss, err := l.client.BSS(ifi)
	if err != nil {
		return false
	}
	return bss.Status == wifi.BSSStatusAssociated
}

func (l *LinuxWifi) Disconnect() error {
	ifi, err := l.lookup()
	if err != nil {
		return err
	}
	if err := l.client.Disconnect(ifi); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("disconnect %s: %w", l.iface, err)
	}
	return nil
}

func setLinkState(iface string, up bool) error {
	state := "down"
	if up {
		state = "up"
	}
	out, err := exec.Command("ip", "link", "set", "dev", iface, state).CombinedOutput()
	if err != nil {
		return fmt.Errorf("ip link set %s %s: %w: %s", iface, state, err, out)
	}
	return nil
}
