package printer

import (
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Printer is a writable sink for raw ESC/POS data.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// Name identifies the device, e.g. its path or address.
	Name() string
}

// --- USB Printer (writes to device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "printer: open device %s", p.path)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errors.Wrapf(err, "printer: write to device %s", p.path)
	}
	return nil
}

func (p *usbPrinter) Close() error {
	return nil // USB printer opens/closes per print job
}

func (p *usbPrinter) Name() string {
	return p.path
}

// --- Network Printer (dials TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return errors.Wrapf(err, "printer: connect to %s", p.address)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(data); err != nil {
		return errors.Wrapf(err, "printer: write to %s", p.address)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil // Network printer opens/closes per print job
}

func (p *networkPrinter) Name() string {
	return "tcp://" + p.address
}

// DeviceLocator finds at most one printer to write a ticket to.
type DeviceLocator interface {
	Locate() (Printer, bool)
}

// PathLocator probes device files in order and picks the first that exists.
type PathLocator struct {
	Paths []string
	stat  func(string) (os.FileInfo, error)
}

// NewPathLocator creates a locator over the given device paths.
func NewPathLocator(paths []string) *PathLocator {
	return &PathLocator{Paths: paths, stat: os.Stat}
}

func (l *PathLocator) Locate() (Printer, bool) {
	stat := l.stat
	if stat == nil {
		stat = os.Stat
	}
	for _, path := range l.Paths {
		if _, err := stat(path); err == nil {
			return NewUSBPrinter(path), true
		}
	}
	return nil, false
}

// AddressLocator always yields the configured network printer; reachability
// is only known when the ticket is written.
type AddressLocator struct {
	Address string
}

func (l AddressLocator) Locate() (Printer, bool) {
	if l.Address == "" {
		return nil, false
	}
	return NewNetworkPrinter(l.Address), true
}

// NoDevice never finds a printer, so every ticket becomes a PDF.
type NoDevice struct{}

func (NoDevice) Locate() (Printer, bool) {
	return nil, false
}

// NewLocatorFromConfig creates the appropriate DeviceLocator based on transport.
//
//	transport: "usb", "network", or "none"
//	devicePaths: device files probed in order (e.g. "/dev/usb/lp0")
//	address: TCP address for network printers (e.g. "192.168.1.100:9100")
func NewLocatorFromConfig(transport string, devicePaths []string, address string) (DeviceLocator, error) {
	switch transport {
	case "usb", "":
		if len(devicePaths) == 0 {
			return nil, errors.New("printer: at least one device path is required for usb transport")
		}
		return NewPathLocator(devicePaths), nil
	case "network":
		if address == "" {
			return nil, errors.New("printer: address is required for network transport")
		}
		return AddressLocator{Address: address}, nil
	case "none":
		return NoDevice{}, nil
	default:
		return nil, errors.Errorf("printer: unknown transport %q (use usb, network, or none)", transport)
	}
}
