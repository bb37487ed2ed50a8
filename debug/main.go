package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/netisu/facet"
	"github.com/netisu/facet/config"
)

func main() {
	settingsPath := flag.String("config", "settings.json", "settings file")
	out := flag.String("out", "", "write a wireframe preview PNG here")
	rx := flag.Float64("rx", 0, "rotation about X in degrees")
	ry := flag.Float64("ry", 0, "rotation about Y in degrees")
	rz := flag.Float64("rz", 0, "rotation about Z in degrees")
	tx := flag.Float64("tx", 0, "translation along X")
	ty := flag.Float64("ty", 0, "translation along Y")
	tz := flag.Float64("tz", 0, "translation along Z")
	factor := flag.Float64("simplify", 0, "decimate to this fraction of triangles (0 keeps all)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: debug [flags] model.obj")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal(err)
	}

	var opts []facet.LoadOption
	if settings.Load.ExactFacetSizing {
		opts = append(opts, facet.WithFacetSizing(facet.ExactSizing))
	}
	if settings.Load.Verbose {
		opts = append(opts, facet.WithLogger(log.New(os.Stderr, "facet: ", log.LstdFlags)))
	}

	obj, err := facet.NewObjectFromFile(path, opts...)
	if err != nil {
		log.Fatal(err)
	}
	mesh := obj.Mesh

	fmt.Println("--- MESH STATS ---")
	fmt.Printf("Vertices: %d\n", mesh.VertexCount())
	fmt.Printf("Facet slots: %d\n", mesh.FacetCount())
	fmt.Printf("Faces: %d\n", mesh.PolygonCount())
	fmt.Printf("Edges: %d\n", len(mesh.Edges()))

	if settings.Transform.Recenter {
		mesh.Recenter()
	}
	if settings.Transform.FitRadius > 0 {
		mesh.ScaleToFit(settings.Transform.FitRadius)
	}
	mesh.SetPendingRotation(facet.AxisX, *rx*math.Pi/180)
	mesh.SetPendingRotation(facet.AxisY, *ry*math.Pi/180)
	mesh.SetPendingRotation(facet.AxisZ, *rz*math.Pi/180)
	mesh.ApplyPendingRotation()
	mesh.Translate(*tx, facet.AxisX)
	mesh.Translate(*ty, facet.AxisY)
	mesh.Translate(*tz, facet.AxisZ)

	if *factor > 0 {
		mesh = mesh.Simplified(*factor)
		obj.Mesh = mesh
		fmt.Printf("Simplified faces: %d\n", mesh.PolygonCount())
	}

	box := mesh.BoundingBox()
	fmt.Printf("Bounding Box Min: %v\n", box.Min)
	fmt.Printf("Bounding Box Max: %v\n", box.Max)
	fmt.Printf("Max radius: %g\n", mesh.MaxRadius())

	if *out == "" {
		return
	}
	p := settings.Preview
	obj.SetColor(facet.HexColor(p.Stroke))
	obj.PointSize = p.PointSize
	obj.PointColor = facet.HexColor(p.PointColor)
	scene := facet.NewScene(p.Size, p.Scale, facet.HexColor(p.Background))
	scene.SetLineWidth(p.LineWidth)
	scene.AddObject(obj)
	scene.Draw(*out)
}
