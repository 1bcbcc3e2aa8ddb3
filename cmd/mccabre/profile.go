package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

const pprofCPUKey = "pprofCPU"

func startProfiling(c *cli.Context) error {
	prefix := c.String("pprof")
	if prefix == "" {
		return nil
	}
	cpuFile, err := os.Create(prefix + ".cpu.pprof")
	if err != nil {
		return fmt.Errorf("failed to create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		cpuFile.Close()
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	c.App.Metadata[pprofCPUKey] = cpuFile
	return nil
}

func stopProfiling(c *cli.Context) error {
	prefix := c.String("pprof")
	if prefix == "" {
		return nil
	}
	cpuFile, ok := c.App.Metadata[pprofCPUKey].(*os.File)
	if !ok {
		return nil
	}
	pprof.StopCPUProfile()
	cpuFile.Close()
	green := color.New(color.FgGreen)
	green.Fprintf(c.App.ErrWriter, "CPU profile written to %s.cpu.pprof\n", prefix)

	memFile, err := os.Create(prefix + ".mem.pprof")
	if err != nil {
		return fmt.Errorf("failed to create memory profile: %w", err)
	}
	defer memFile.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("failed to write memory profile: %w", err)
	}
	green.Fprintf(c.App.ErrWriter, "Memory profile written to %s.mem.pprof\n", prefix)
	return nil
}
