// Package giiker connects to a Giiker smart puzzle cube over Bluetooth Low
// Energy, decodes its state notifications, and pulses an output line when
// the cube reaches its solved configuration.
//
// # Quick Start
//
//	session, err := giiker.New(
//	    giiker.WithAddress("CD:59:03:D3:8F:D0"),
//	    giiker.WithHoldDuration(5*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session.OnSolved(func() {
//	    fmt.Println("solved!")
//	})
//	session.OnMove(func(m giiker.Move) {
//	    fmt.Println("move:", m.Notation())
//	})
//
//	if err := session.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Run drives a single cooperative loop: it scans for the fixed peer address,
// connects, subscribes, and then sleeps while notifications arrive
// asynchronously. Link loss resets the lifecycle and the loop re-scans.
//
// The cube's 16-byte body record is treated as opaque: solved detection is a
// byte-exact comparison against the known solved pattern, not a cube model.
// Alongside the cube link, the session advertises an unrelated UART-style
// pass-through service that echoes writes back as notifications.
package giiker
