// Command meshgen loads a scene snapshot from JSON, runs the mesh
// generator, prints a summary, and optionally dumps the result as a
// Wavefront .obj file.
package main

import (
	"flag"
	"fmt"
	"os"

	"meshforge/internal/generator"
	"meshforge/internal/genlog"
	"meshforge/internal/profiling"
	"meshforge/internal/snapshot"
	"meshforge/pkg/meshmodel"
)

func main() {
	in := flag.String("in", "", "path to a scene snapshot JSON file")
	out := flag.String("obj", "", "optional path to write the result as Wavefront .obj")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: meshgen -in scene.json [-obj out.obj]")
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		fatalf("open snapshot: %v", err)
	}
	defer f.Close()

	snap, err := snapshot.LoadJSON(f)
	if err != nil {
		fatalf("load snapshot: %v", err)
	}

	gen := generator.New()
	obj, err := gen.Generate(snap)
	if err != nil {
		fatalf("generate: %v", err)
	}

	printSummary(obj)

	if *out != "" {
		if err := writeOBJ(*out, obj); err != nil {
			fatalf("write obj: %v", err)
		}
	}
}

func printSummary(obj *meshmodel.Object) {
	fmt.Printf("object %s: successful=%t vertices=%d triangles=%d triangleAndQuads=%d nodes=%d incombinable=%d\n",
		obj.ID, obj.IsSuccessful, len(obj.Vertices), len(obj.Triangles), len(obj.TriangleAndQuads), len(obj.Nodes), len(obj.Incombinable))
	fmt.Println("  top stages:", profiling.TopN(5))
}

func writeOBJ(path string, obj *meshmodel.Object) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, v := range obj.Vertices {
		if _, err := fmt.Fprintf(f, "v %f %f %f\n", v.X(), v.Y(), v.Z()); err != nil {
			return err
		}
	}
	for _, face := range obj.TriangleAndQuads {
		fmt.Fprint(f, "f")
		for _, idx := range face {
			fmt.Fprintf(f, " %d", idx+1)
		}
		fmt.Fprintln(f)
	}
	return nil
}

func fatalf(format string, args ...interface{}) {
	genlog.Warnf(format, args...)
	fmt.Fprintf(os.Stderr, "meshgen: "+format+"\n", args...)
	os.Exit(1)
}
