package main

import (
	"flag"
	"fmt"
	"os"

	"tm-spectators/internal/export"
	"tm-spectators/internal/scene"
)

func main() {
	rows := flag.Bool("rows", false, "Print the rows an export with default settings would write")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspectscene [-rows] scene.json")
		os.Exit(2)
	}

	sc, err := scene.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scene: %s\n", sc.Path)
	fmt.Printf("Blend dir: %s\n", sc.BlendDir)
	fmt.Printf("Active: %q, Objects: %d\n", sc.Active, len(sc.Objects))

	for _, o := range sc.Objects {
		fmt.Printf("  %s [%s] pivot=(%.2f, %.2f, %.2f)\n", o.Name, o.Type, o.Location[0], o.Location[1], o.Location[2])
		for i, sys := range o.Systems {
			marker := " "
			if i == o.ActiveSystem {
				marker = "*"
			}
			fmt.Printf("   %s system[%d] %q type=%s particles=%d\n", marker, i, sys.Name, sys.Type, len(sys.Particles))
			if len(sys.Particles) == 0 {
				continue
			}
			lo, hi := scene.Bounds(sys.Particles)
			fmt.Printf("      BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
		}

		if !*rows {
			continue
		}
		particles, err := o.Particles()
		if err != nil {
			continue
		}
		unique, removed := export.Dedup(export.Transform(particles, o.Pivot(), export.DefaultConfig()))
		fmt.Printf("      Rows: %d (duplicates: %d)\n", len(unique), removed)
		if err := export.WriteRows(os.Stdout, unique, true); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
