package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

const gifPath = "bouncesim.gif"

const (
	gifCellW = 8
	gifCellH = 16
)

// Recorder turns canvas frames into a looping GIF.
type Recorder struct {
	frames []*image.Paletted
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterises the canvas with one block per lit Braille dot.
func (r *Recorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*gifCellW, c.Height*gifCellH), color.Palette{color.Black, color.White})
	dotW, dotH := gifCellW/2, gifCellH/4
	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save writes every captured frame to path. It does nothing when no frame
// was captured.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
