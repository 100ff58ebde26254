// Command flycam opens a window and flies a first-person camera over a textured plane lit by an
// orbiting point light. WASD moves, the mouse looks around, Escape quits.
package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/flycam/engine"
	"github.com/Carmen-Shannon/flycam/engine/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "flycam:", err)
		os.Exit(1)
	}
}

func run() error {
	eng, err := engine.NewEngine(config.Default())
	if err != nil {
		return err
	}
	return eng.Run()
}
