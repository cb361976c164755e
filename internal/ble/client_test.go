package ble

import (
	"context"
	"errors"
	"testing"
	"time"

	"tinygo.org/x/bluetooth"
)

func TestAwaitScan_Found(t *testing.T) {
	found := make(chan bluetooth.ScanResult, 1)
	found <- bluetooth.ScanResult{RSSI: -42}

	result, err := awaitScan(context.Background(), found, make(chan error, 1))
	if err != nil {
		t.Fatal(err)
	}
	if result.RSSI != -42 {
		t.Errorf("RSSI = %d, want -42", result.RSSI)
	}
}

func TestAwaitScan_ScanErrorUnblocks(t *testing.T) {
	// A failing scan (adapter off, stack already discovering) must surface
	// as an error rather than leaving the caller blocked until shutdown.
	scanErr := errors.New("already discovering")
	errc := make(chan error, 1)
	errc <- scanErr

	done := make(chan error, 1)
	go func() {
		_, err := awaitScan(context.Background(), make(chan bluetooth.ScanResult, 1), errc)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, scanErr) {
			t.Errorf("err = %v, want wrapped %v", err, scanErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("awaitScan stayed blocked after the scan failed")
	}
}

func TestAwaitScan_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := awaitScan(ctx, make(chan bluetooth.ScanResult, 1), make(chan error, 1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
