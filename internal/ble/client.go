// Package ble provides the BLE central link to the cube: scanning for the
// fixed peer address, connecting, resolving the state service and
// characteristic, and subscribing to notifications.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/mlowell/giiker_trigger/internal/protocol"
)

// Errors
var (
	ErrServiceNotFound        = errors.New("ble: cube service not found")
	ErrCharacteristicNotFound = errors.New("ble: state characteristic not found")
	ErrNotifyUnsupported      = errors.New("ble: characteristic does not support notifications")
	ErrInvalidState           = errors.New("ble: operation not valid in current state")
)

// Cube service and characteristic UUIDs
var (
	cubeServiceUUID = mustParseUUID(protocol.ServiceUUID)
	stateCharUUID   = mustParseUUID(protocol.StateCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic("ble: bad UUID constant " + s)
	}
	return u
}

// Client manages the BLE connection to one fixed peer. It owns the
// connection lifecycle state; callers drive it with Scan and Connect and
// observe it through State and the state handler.
type Client struct {
	adapter *bluetooth.Adapter
	target  string
	timeout time.Duration
	log     *logrus.Entry

	mu       sync.Mutex
	state    ConnState
	found    bluetooth.ScanResult
	hasFound bool
	device   bluetooth.Device

	onNotify func([]byte)
	onState  func(ConnState)
}

// NewClient creates a client bound to the peer hardware address target.
// connectTimeout bounds each connect attempt at the transport level.
func NewClient(target string, connectTimeout time.Duration, logger *logrus.Logger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	c := &Client{
		adapter: adapter,
		target:  strings.ToUpper(target),
		timeout: connectTimeout,
		state:   StateIdle,
		log:     logger.WithField("peer", strings.ToUpper(target)),
	}
	adapter.SetConnectHandler(c.handleConnectEvent)

	return c, nil
}

// SetNotifyHandler sets the callback for raw state notifications. The
// callback runs on the transport's goroutine, outside any driving loop.
func (c *Client) SetNotifyHandler(cb func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNotify = cb
}

// SetStateHandler sets the callback for connection state changes.
func (c *Client) SetStateHandler(cb func(ConnState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = cb
}

// State returns the current connection state.
func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Target returns the peer address this client is bound to.
func (c *Client) Target() string {
	return c.target
}

// transition moves the lifecycle to the given state if the edge is valid.
func (c *Client) transition(to ConnState) bool {
	c.mu.Lock()
	from := c.state
	if !canTransition(from, to) {
		c.mu.Unlock()
		c.log.WithFields(logrus.Fields{"from": from, "to": to}).Warn("rejected state transition")
		return false
	}
	c.state = to
	cb := c.onState
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"from": from, "to": to}).Info("connection state changed")
	if cb != nil {
		cb(to)
	}
	return true
}

// Scan runs an advertisement scan until the target peer is seen or ctx ends.
// The first matching advertisement wins and stops the scan; advertisements
// from any other address are ignored.
func (c *Client) Scan(ctx context.Context) error {
	if !c.transition(StateScanning) {
		return fmt.Errorf("%w: cannot scan from %v", ErrInvalidState, c.State())
	}

	found := make(chan bluetooth.ScanResult, 1)
	errc := make(chan error, 1)
	go func() {
		err := c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			addr := result.Address.String()
			if !strings.EqualFold(addr, c.target) {
				c.log.WithField("address", addr).Debug("advertisement from non-target peer, ignoring")
				return
			}
			select {
			case found <- result:
			default:
			}
		})
		if err != nil {
			errc <- err
		}
	}()

	result, err := awaitScan(ctx, found, errc)
	c.adapter.StopScan()
	if err != nil {
		c.transition(StateIdle)
		return err
	}

	c.mu.Lock()
	c.found = result
	c.hasFound = true
	c.mu.Unlock()
	c.transition(StateFound)
	c.log.WithFields(logrus.Fields{
		"name": result.LocalName(),
		"rssi": result.RSSI,
	}).Info("target cube found, scan stopped")
	return nil
}

// awaitScan blocks until a matching advertisement arrives, the scan itself
// fails, or ctx ends. A scan failure must unblock the caller so the driving
// loop can retry at its next tick instead of hanging for the process
// lifetime.
func awaitScan(ctx context.Context, found <-chan bluetooth.ScanResult, errc <-chan error) (bluetooth.ScanResult, error) {
	select {
	case result := <-found:
		return result, nil
	case err := <-errc:
		return bluetooth.ScanResult{}, fmt.Errorf("scan failed: %w", err)
	case <-ctx.Done():
		return bluetooth.ScanResult{}, ctx.Err()
	}
}

// Connect runs the found -> connecting -> connected sequence: transport
// connect, service resolution, characteristic resolution, notification
// subscription. Any step failing moves the client to failed and aborts the
// rest; the driving loop may retry at its own cadence via a fresh scan.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != StateFound || !c.hasFound {
		c.mu.Unlock()
		return fmt.Errorf("%w: no found device to connect to", ErrInvalidState)
	}
	result := c.found
	c.mu.Unlock()

	if !c.transition(StateConnecting) {
		return fmt.Errorf("%w: cannot connect from %v", ErrInvalidState, c.State())
	}

	params := bluetooth.ConnectionParams{}
	if c.timeout > 0 {
		params.ConnectionTimeout = bluetooth.NewDuration(c.timeout)
	}

	device, err := c.adapter.Connect(result.Address, params)
	if err != nil {
		c.fail()
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{cubeServiceUUID})
	if err != nil {
		device.Disconnect()
		c.fail()
		return fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	}
	if len(services) == 0 {
		device.Disconnect()
		c.fail()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{stateCharUUID})
	if err != nil {
		device.Disconnect()
		c.fail()
		return fmt.Errorf("%w: %v", ErrCharacteristicNotFound, err)
	}
	if len(chars) == 0 {
		device.Disconnect()
		c.fail()
		return ErrCharacteristicNotFound
	}

	if err := chars[0].EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		c.fail()
		return fmt.Errorf("%w: %v", ErrNotifyUnsupported, err)
	}

	c.mu.Lock()
	c.device = device
	c.mu.Unlock()
	c.transition(StateConnected)
	c.log.Info("subscribed to cube state notifications")

	return nil
}

// fail clears the cached peer descriptor and marks the attempt failed, so
// the next attempt starts from a fresh scan.
func (c *Client) fail() {
	c.mu.Lock()
	c.hasFound = false
	c.mu.Unlock()
	c.transition(StateFailed)
}

// Disconnect tears down an active connection and returns to idle.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return nil
	}
	device := c.device
	c.hasFound = false
	c.mu.Unlock()

	err := device.Disconnect()
	c.transition(StateIdle)
	return err
}

// handleConnectEvent is invoked by the adapter on link events. Link loss
// clears the cached peer and returns to idle so the loop re-scans.
func (c *Client) handleConnectEvent(device bluetooth.Device, connected bool) {
	if connected {
		return
	}

	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return
	}
	c.hasFound = false
	c.mu.Unlock()

	c.log.Warn("link lost, resuming scan")
	c.transition(StateIdle)
}

// handleNotification forwards raw notification payloads to the handler.
func (c *Client) handleNotification(data []byte) {
	c.mu.Lock()
	cb := c.onNotify
	c.mu.Unlock()

	if cb != nil {
		cb(data)
	}
}
