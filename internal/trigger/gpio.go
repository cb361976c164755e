package trigger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GPIOPin drives a GPIO line through the Linux sysfs interface.
type GPIOPin struct {
	valuePath string
}

// NewGPIOPin exports the given GPIO number if needed and configures it as an
// output, initially low.
func NewGPIOPin(n int) (*GPIOPin, error) {
	base := filepath.Join("/sys/class/gpio", fmt.Sprintf("gpio%d", n))

	if _, err := os.Stat(base); os.IsNotExist(err) {
		if err := os.WriteFile("/sys/class/gpio/export", []byte(strconv.Itoa(n)), 0o644); err != nil {
			return nil, fmt.Errorf("failed to export gpio%d: %w", n, err)
		}
		// udev needs a moment to fix up permissions on the new node
		time.Sleep(100 * time.Millisecond)
	}

	if err := os.WriteFile(filepath.Join(base, "direction"), []byte("out"), 0o644); err != nil {
		return nil, fmt.Errorf("failed to set gpio%d direction: %w", n, err)
	}

	p := &GPIOPin{valuePath: filepath.Join(base, "value")}
	if err := p.Set(false); err != nil {
		return nil, err
	}
	return p, nil
}

// Set drives the line high or low.
func (p *GPIOPin) Set(high bool) error {
	v := []byte("0")
	if high {
		v = []byte("1")
	}
	if err := os.WriteFile(p.valuePath, v, 0o644); err != nil {
		return fmt.Errorf("failed to write gpio value: %w", err)
	}
	return nil
}
