// Package diag provides debug-only diagnostics for the front end: a logger
// that's silent unless enabled, and a PPM frame dumper. Grounded on the
// teacher's cmd/gones/main.go (saveFrameBufferAsPPM, analyzeFrameBuffer),
// trimmed to the core behavior and stripped of its Japanese-language
// progress narration, which was specific to that one script's console
// output rather than a reusable diagnostic.
package diag

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is silent by default; Enable points it at stderr. Nothing in the
// core packages (cpu/ppu/bus/cartridge/ram/controller) ever touches this —
// runtime execution of a valid ROM produces no ambient output (spec.md §7).
var Logger = log.New(io.Discard, "nesgo: ", log.LstdFlags)

// Enable redirects Logger to stderr. Called once from cmd/nesgo when -debug
// is set.
func Enable() {
	Logger.SetOutput(os.Stderr)
}

// DumpPPM writes a 256x240 packed-RGB (0x00RRGGBB) framebuffer to path as
// a binary PPM (P6) image, for inspecting a stuck frame. Neither cmd/nesgo
// nor the core calls it.
func DumpPPM(frame *[256 * 240]uint32, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("diag: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "P6\n256 240\n255\n"); err != nil {
		return fmt.Errorf("diag: write header: %w", err)
	}

	buf := make([]byte, 0, 256*240*3)
	for _, pixel := range frame {
		buf = append(buf, byte(pixel>>16), byte(pixel>>8), byte(pixel))
	}
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("diag: write pixels: %w", err)
	}
	return nil
}

// SummarizeFrame reports the number of distinct colors and the fraction of
// non-black pixels in frame, for a quick "is anything rendering" sanity
// check. cmd/nesgo does not call it.
func SummarizeFrame(frame *[256 * 240]uint32) (distinctColors int, nonBlackFraction float64) {
	counts := make(map[uint32]int)
	nonBlack := 0
	for _, pixel := range frame {
		counts[pixel]++
		if pixel != 0 {
			nonBlack++
		}
	}
	return len(counts), float64(nonBlack) / float64(len(frame))
}
