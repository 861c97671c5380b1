package main

import (
	"fmt"
	"os"

	"github.com/verahealth/coach-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Start()

	a.Log.Info("Starting HTTP server", "addr", a.Cfg.HTTPAddr)
	if err := a.Run(); err != nil {
		a.Log.Error("HTTP server exited", "error", err.Error())
		os.Exit(1)
	}
}
