package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS data to a thermal receipt printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// IsConnected returns true if the printer is reachable.
	IsConnected() bool
	// Close releases the printer connection/handle.
	Close() error
}

// Config selects the printer transport.
//
//	Mode "usb":     write to a device file (DevicePath, e.g. /dev/usb/lp0)
//	Mode "network": dial TCP (Address, e.g. 192.168.1.50:9100)
//	Mode "none":    discard output (no hardware attached)
type Config struct {
	Mode       string
	DevicePath string
	Address    string
}

// Open creates the printer for the given configuration.
func Open(cfg Config) (Printer, error) {
	switch cfg.Mode {
	case "usb":
		if cfg.DevicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for usb mode")
		}
		return &devicePrinter{path: cfg.DevicePath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network mode")
		}
		return &tcpPrinter{address: cfg.Address, dialTimeout: 5 * time.Second}, nil
	case "none", "":
		return Discard, nil
	}
	return nil, fmt.Errorf("printer: unknown mode %q (use usb, network, or none)", cfg.Mode)
}

// devicePrinter writes to a character device file. The device is opened
// per print job; holding it open blocks other users of the port.
type devicePrinter struct {
	path string
}

func (p *devicePrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *devicePrinter) Close() error { return nil }

// tcpPrinter dials the printer per print job (port 9100 raw printing).
type tcpPrinter struct {
	address     string
	dialTimeout time.Duration
}

func (p *tcpPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *tcpPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *tcpPrinter) Close() error { return nil }

// Discard is a no-op printer for environments without hardware.
var Discard Printer = discardPrinter{}

type discardPrinter struct{}

func (discardPrinter) Print(data []byte) error { return nil }
func (discardPrinter) IsConnected() bool       { return false }
func (discardPrinter) Close() error            { return nil }
