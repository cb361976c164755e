// Giiker cube solved-state trigger - connects to a Giiker smart cube over
// BLE and pulses an output line when the cube is solved.
package main

import (
	"github.com/mlowell/giiker_trigger/internal/cli"
)

func main() {
	cli.Execute()
}
