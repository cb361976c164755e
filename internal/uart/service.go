// Package uart exposes a Nordic-UART-style pass-through service while the
// central side talks to the cube. Bytes written to the RX characteristic are
// echoed back as notifications on TX. The service is independent of the cube
// pipeline; it exists so serial-style clients can talk to the box over BLE.
package uart

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"
)

// Nordic UART Service UUIDs
const (
	serviceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	rxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
	txCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
)

// Service is the advertised UART echo service.
type Service struct {
	tx  bluetooth.Characteristic
	log *logrus.Entry
}

// Start registers the service on the adapter and begins advertising it under
// the given local name. The adapter keeps serving until the process exits.
func Start(adapter *bluetooth.Adapter, name string, logger *logrus.Logger) (*Service, error) {
	s := &Service{log: logger.WithField("component", "uart")}

	svcUUID, err := bluetooth.ParseUUID(serviceUUID)
	if err != nil {
		return nil, err
	}
	rxUUID, err := bluetooth.ParseUUID(rxCharUUID)
	if err != nil {
		return nil, err
	}
	txUUID, err := bluetooth.ParseUUID(txCharUUID)
	if err != nil {
		return nil, err
	}

	err = adapter.AddService(&bluetooth.Service{
		UUID: svcUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &s.tx,
				UUID:   txUUID,
				Flags:  bluetooth.CharacteristicNotifyPermission | bluetooth.CharacteristicReadPermission,
			},
			{
				UUID:  rxUUID,
				Flags: bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					s.echo(value)
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add UART service: %w", err)
	}

	adv := adapter.DefaultAdvertisement()
	err = adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    name,
		ServiceUUIDs: []bluetooth.UUID{svcUUID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure advertisement: %w", err)
	}
	if err := adv.Start(); err != nil {
		return nil, fmt.Errorf("failed to start advertisement: %w", err)
	}

	s.log.WithField("name", name).Info("UART service advertising")
	return s, nil
}

// echo mirrors an RX write back out on TX.
func (s *Service) echo(value []byte) {
	if len(value) == 0 {
		return
	}
	if _, err := s.tx.Write(value); err != nil {
		s.log.WithError(err).Debug("echo notify failed")
		return
	}
	s.log.WithField("bytes", len(value)).Debug("echoed UART payload")
}
