package main

import (
	"os"

	"github.com/PolyRocketMatt/Delegate-sub000/cmd/delegate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
