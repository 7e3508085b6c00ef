package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/svgphysics/common"
	"github.com/milk9111/svgphysics/svgphysics"
)

func main() {
	svgPath := flag.String("svg", "", "SVG document to load (defaults to the embedded demo)")
	configPath := flag.String("config", "", "YAML config overlaid on the defaults")
	container := flag.String("container", "#stage", "selector of the element that sizes the canvas")
	source := flag.String("source", "#logo", "selector of the element whose paths become bodies")
	debug := flag.Bool("debug", false, "enable dev mode (D toggles hull overlay)")
	watch := flag.Bool("watch", false, "rebuild the scene when the SVG or config file changes")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("svgphysics")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*svgPath, *configPath, svgphysics.Options{
		ContainerSelector: *container,
		SourceSelector:    *source,
	}, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
