// Command spritefx-undo is a small demo driver for the undo engine: it
// builds a document, runs a short scripted sequence of edits (a layer,
// an image and a cel added as one group, then a painted rectangle as a
// second group), then walks the history back and forth reporting state
// along the way.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/disintegration/imaging"

	"github.com/anyproto/sprite-undo/config"
	"github.com/anyproto/sprite-undo/logging"
	"github.com/anyproto/sprite-undo/objects"
	"github.com/anyproto/sprite-undo/raster"
	"github.com/anyproto/sprite-undo/undo"
)

var log = logging.Logger("cmd")

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON config file (optional)")
		verbose    = flag.Bool("v", false, "enable debug logging")
		dumpPath   = flag.String("dump", "", "write the final canvas to this PNG path (optional)")
	)
	flag.Parse()

	if *verbose {
		logging.ApplyLevel("debug")
	} else {
		logging.ApplyLevelFromEnv()
	}

	limitMiB := 0
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load config:", err)
			os.Exit(1)
		}
		limitMiB = cfg.UndoSizeLimitMiB
	}

	if err := run(limitMiB, *dumpPath); err != nil {
		log.Errorw("demo run failed", "error", err)
		os.Exit(1)
	}
}

func run(limitMiB int, dumpPath string) error {
	objs := objects.New()
	doc := raster.NewDocument(64, 64, raster.RGB)
	doc.ID = objs.Add(doc)
	doc.Sprite.ID = objs.Add(doc.Sprite)
	doc.Root.SpriteID = doc.Sprite.ID
	doc.Root.ID = objs.Add(doc.Root)

	h := undo.New(objs, limitMiB)

	report := func(label string) {
		st := h.Stats()
		fmt.Printf("%-24s undo=%d redo=%d mem=%d groups=%d saved=%v\n",
			label, st.UndoCount, st.RedoCount, st.UndoMemSize, st.UndoGroupCount, h.IsSavedState())
	}

	report("initial")

	h.SetLabel("add layer")
	h.UndoOpen()
	layer := raster.NewImageLayer(doc.Sprite.ID, "Layer 1")
	if err := h.RecordAddLayer(doc.Root, 0, layer); err != nil {
		return err
	}
	img := raster.NewImage(raster.RGB, 64, 64)
	if err := h.RecordAddImage(doc.Sprite.Stock, objs.Add(doc.Sprite.Stock), 0, img); err != nil {
		return err
	}
	cel := &raster.Cel{Frame: 0, ImageIdx: 0, Opacity: 255}
	if err := h.RecordAddCel(layer, cel); err != nil {
		return err
	}
	h.UndoClose()
	report("after add layer")

	h.MarkSavedState()

	h.SetLabel("paint")
	h.UndoOpen()
	if err := h.RecordImage(img, 0, 0, 8, 8); err != nil {
		return err
	}
	white := make([]byte, raster.RGB.LineSize(8)*8)
	for i := range white {
		white[i] = 0xff
	}
	if _, err := img.WriteRect(0, 0, 8, 8, white); err != nil {
		return err
	}
	h.UndoClose()
	report("after paint")

	fmt.Println("undo label:", h.GetNextUndoLabel())
	if err := h.DoUndo(); err != nil {
		return err
	}
	report("after undo")
	fmt.Println("saved state restored:", h.IsSavedState())

	if err := h.DoRedo(); err != nil {
		return err
	}
	report("after redo")

	if dumpPath != "" {
		nrgba, err := img.ToStdImage(nil)
		if err != nil {
			return err
		}
		if err := imaging.Save(nrgba, dumpPath); err != nil {
			return fmt.Errorf("dump canvas: %w", err)
		}
		fmt.Println("wrote canvas to", dumpPath)
	}

	return nil
}
