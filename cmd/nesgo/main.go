// Command nesgo runs the reference front end: load a ROM, open a window,
// play. It wires internal/config, internal/emulator, and internal/frontend
// together; none of the emulation core lives here.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nesgo/internal/config"
	"nesgo/internal/diag"
	"nesgo/internal/emulator"
	"nesgo/internal/frontend"
	"nesgo/internal/version"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("nesgo: %v", err)
	}

	if cfg.VersionRequest {
		fmt.Println(version.Get())
		return
	}

	if cfg.Debug {
		diag.Enable()
	}

	if cfg.ROMPath == "" {
		log.Fatal("nesgo: no ROM specified; pass -rom <file> or set NESGO_ROM")
	}

	romBytes, err := os.ReadFile(cfg.ROMPath)
	if err != nil {
		log.Fatalf("nesgo: read ROM: %v", err)
	}

	emu, err := emulator.New(romBytes)
	if err != nil {
		log.Fatalf("nesgo: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	diag.Logger.Printf("loaded %s, scale=%dx", cfg.ROMPath, cfg.Scale)

	if err := frontend.Run(ctx, emu, cfg.Scale); err != nil {
		log.Fatalf("nesgo: %v", err)
	}
}
