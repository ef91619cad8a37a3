package main

import (
	"os"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
