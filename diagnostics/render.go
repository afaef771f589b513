package diagnostics

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/katalite/go5x5/board"
)

const cellSize = 40

// cosmetic colors for the board rendering.
var (
	backgroundColor = color.RGBA{R: 0xe8, G: 0xc3, B: 0x8a, A: 0xff}
	lineColor       = color.Black
	blackStoneColor = color.Black
	whiteStoneColor = color.White
)

// RenderBoardPNG draws s as a small board diagram and returns PNG bytes.
// It uses golang.org/x/image/font/basicfont for its side-to-move label rather than
// github.com/golang/freetype, which needs an external .ttf asset this
// module doesn't ship — basicfont is a Go-source-embedded fixed face with
// no external file dependency.
func RenderBoardPNG(s *board.GameState) ([]byte, error) {
	size := board.Size*cellSize + cellSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: backgroundColor}, image.Point{}, draw.Src)

	for i := 0; i <= board.Size; i++ {
		drawLine(img, cellSize/2, cellSize/2+i*cellSize, size-cellSize/2, cellSize/2+i*cellSize)
		drawLine(img, cellSize/2+i*cellSize, cellSize/2, cellSize/2+i*cellSize, size-cellSize/2)
	}

	for idx := 0; idx < board.NumPoints; idx++ {
		p := board.PointFromIdx(idx)
		stone := s.Board.Get(p)
		if stone == board.Empty {
			continue
		}
		cx := cellSize/2 + p.Col*cellSize
		cy := cellSize/2 + p.Row*cellSize
		col := blackStoneColor
		if stone == board.White {
			col = whiteStoneColor
		}
		drawStone(img, cx, cy, cellSize/2-4, col)
	}

	drawLabel(img, 4, size-6, "to move: "+s.ToMove.String())

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawLine(img draw.Image, x0, y0, x1, y1 int) {
	if x0 == x1 {
		for y := y0; y <= y1; y++ {
			img.Set(x0, y, lineColor)
		}
		return
	}
	for x := x0; x <= x1; x++ {
		img.Set(x, y0, lineColor)
	}
}

func drawStone(img draw.Image, cx, cy, r int, c color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				img.Set(cx+x, cy+y, c)
			}
		}
	}
}

func drawLabel(img draw.Image, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
