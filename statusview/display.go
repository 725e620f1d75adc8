package statusview

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// WriterDisplay prints every update as a line on W.
type WriterDisplay struct {
	W  io.Writer
	mu sync.Mutex
}

func (d *WriterDisplay) SetText(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := fmt.Fprintln(d.W, text)
	return err
}

// DeviceDisplay writes the text to a device node, e.g. the clock's LCD
// driver. The device must already exist; it is never created.
type DeviceDisplay struct {
	Path string
}

func (d *DeviceDisplay) SetText(text string) error {
	_, err := os.Stat(d.Path)
	if err != nil {
		return err
	}

	dev, err := os.OpenFile(d.Path, os.O_TRUNC|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer dev.Close()

	_, err = dev.WriteString(text + "\n")
	if err != nil {
		return err
	}

	return dev.Sync()
}
