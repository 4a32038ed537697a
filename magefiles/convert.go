//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const samplesDir = "samples"

// Samples converts every JSON model under samples/ into bin/samples/*.obj
// with the freshly built CLI.
func Samples() error {
	mg.Deps(Build)

	outDir := filepath.Join(binDir, samplesDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	inputs, err := filepath.Glob(filepath.Join(samplesDir, "*.json"))
	if err != nil {
		return err
	}
	bin := filepath.Join(binDir, binName)
	for _, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out := filepath.Join(outDir, base+".obj")
		if err := sh.Run(bin, in, "-o", out); err != nil {
			return fmt.Errorf("converting %s: %w", in, err)
		}
		fmt.Println("  ", out)
	}
	fmt.Printf("Converted %d sample(s).\n", len(inputs))
	return nil
}
