package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/yuin/goldmark"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"lectern/assets"
	"lectern/internal/document"
)

const (
	pngWidth      = 800.0
	pngMargin     = 40.0
	blockGap      = 16.0
	sidePanelW    = 140.0
	maxBoardPx    = 400.0
	lineHeightMul = 1.5
)

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error

	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
)

func fontFace(size float64) (font.Face, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	if monoErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", monoErr)
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[size]; ok {
		return face, nil
	}
	face := truetype.NewFace(monoFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faceCache[size] = face
	return face, nil
}

// pagePainter lays a page out top to bottom. With draw off it only measures,
// which is how the image height is found before drawing.
type pagePainter struct {
	dc   *gg.Context
	draw bool
	y    float64
}

func exportPNG(page *document.Page, filename string) error {
	if page == nil {
		return fmt.Errorf("no page to export")
	}

	measure := &pagePainter{dc: gg.NewContext(int(pngWidth), 1), y: pngMargin}
	if err := measure.page(page); err != nil {
		return err
	}
	height := int(measure.y + pngMargin)

	dc := gg.NewContext(int(pngWidth), height)
	dc.SetColor(color.White)
	dc.Clear()
	painter := &pagePainter{dc: dc, draw: true, y: pngMargin}
	if err := painter.page(page); err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

func (p *pagePainter) page(page *document.Page) error {
	if page.Heading != nil {
		for _, segment := range []document.HeadingSegment{page.Heading.Main, page.Heading.Sub} {
			if !segment.Enabled || segment.Content == "" {
				continue
			}
			if err := p.text(segment.Content, segment.Style, pngMargin, pngWidth-2*pngMargin, true); err != nil {
				return err
			}
		}
		p.y += blockGap / 2
	}

	for _, block := range page.Blocks {
		switch b := block.(type) {
		case *document.TextBlock:
			if err := p.text(b.Content, b.Style, pngMargin, pngWidth-2*pngMargin, false); err != nil {
				return err
			}
		case *document.BoardBlock:
			if err := p.boardRow(b); err != nil {
				return err
			}
		}
		p.y += blockGap
	}
	return nil
}

// text writes wrapped lines in a column starting at x and advances y.
func (p *pagePainter) text(content string, style document.TextStyle, x, width float64, centered bool) error {
	size := style.Size
	if size <= 0 {
		size = document.DefaultTextStyle().Size
	}
	face, err := fontFace(size)
	if err != nil {
		return err
	}
	p.dc.SetFontFace(face)
	p.dc.SetHexColor(style.Color)

	lineHeight := size * lineHeightMul
	for _, paragraph := range strings.Split(content, "\n") {
		lines := p.dc.WordWrap(paragraph, width)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for _, line := range lines {
			if p.draw {
				if centered {
					p.dc.DrawStringAnchored(line, x+width/2, p.y+size, 0.5, 0)
				} else {
					p.dc.DrawString(line, x, p.y+size)
				}
			}
			p.y += lineHeight
		}
	}
	return nil
}

// boardRow draws a board centered between its side panels.
func (p *pagePainter) boardRow(board *document.BoardBlock) error {
	r := visibleRegion(board.Variant, board.Size)
	boardW, boardH := boardPixels(r)
	top := p.y
	bottom := top + boardH

	for _, side := range []document.Side{document.SideLeft, document.SideRight} {
		text, ok := board.SideText(side)
		if !ok {
			continue
		}
		style := document.DefaultSideStyle()
		if s := sideStyle(board, side); s != nil {
			style = *s
		}
		x := pngMargin
		if side == document.SideRight {
			x = pngWidth - pngMargin - sidePanelW
		}
		p.y = top
		if err := p.text(text, style, x, sidePanelW, false); err != nil {
			return err
		}
		bottom = max(bottom, p.y)
	}

	if p.draw {
		drawBoard(p.dc, board, r, (pngWidth-boardW)/2, top)
	}
	p.y = bottom
	return nil
}

func boardPixels(r region) (float64, float64) {
	cols, rows := r.X1-r.X0+1, r.Y1-r.Y0+1
	cell := min(28.0, maxBoardPx/float64(max(cols, rows)))
	return cell * float64(cols), cell * float64(rows)
}

// drawBoard paints the visible region of a board with its top-left corner at
// (left, top). Lines run through cell centers.
func drawBoard(dc *gg.Context, board *document.BoardBlock, r region, left, top float64) {
	w, h := boardPixels(r)
	cell := w / float64(r.X1-r.X0+1)
	at := func(x, y int) (float64, float64) {
		return left + (float64(x-r.X0)+0.5)*cell, top + (float64(y-r.Y0)+0.5)*cell
	}

	dc.SetHexColor("#e8c27a")
	dc.DrawRectangle(left, top, w, h)
	dc.Fill()

	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	for y := r.Y0; y <= r.Y1; y++ {
		x0, py := at(r.X0, y)
		x1, _ := at(r.X1, y)
		dc.DrawLine(x0, py, x1, py)
		dc.Stroke()
	}
	for x := r.X0; x <= r.X1; x++ {
		px, y0 := at(x, r.Y0)
		_, y1 := at(x, r.Y1)
		dc.DrawLine(px, y0, px, y1)
		dc.Stroke()
	}
	for _, star := range starPoints(board.Size) {
		if r.contains(star[0], star[1]) {
			px, py := at(star[0], star[1])
			dc.DrawCircle(px, py, cell*0.1)
			dc.Fill()
		}
	}

	grid := boardGrid(decodeStones(board.Moves, board.Size), board.Size)
	for y := r.Y0; y <= r.Y1; y++ {
		for x := r.X0; x <= r.X1; x++ {
			if grid[y][x] == 0 {
				continue
			}
			px, py := at(x, y)
			dc.DrawCircle(px, py, cell*0.46)
			if grid[y][x] == document.Black {
				dc.SetColor(color.Black)
				dc.Fill()
				continue
			}
			dc.SetColor(color.White)
			dc.FillPreserve()
			dc.SetColor(color.Black)
			dc.Stroke()
		}
	}
}

func boardImageURI(board *document.BoardBlock) (template.URL, error) {
	r := visibleRegion(board.Variant, board.Size)
	w, h := boardPixels(r)
	dc := gg.NewContext(int(w+0.5), int(h+0.5))
	drawBoard(dc, board, r, 0, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode board %s: %w", board.ID, err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

var exportTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<div class="export-root">
{{- range .Pages}}
<section class="export-page" id="{{.ID}}">
{{- if or .Main .Sub}}
<header class="export-heading">
{{- with .Main}}<h1 class="export-title" style="{{.Style}}">{{.Text}}</h1>{{end}}
{{- with .Sub}}<p class="export-subtitle" style="{{.Style}}">{{.Text}}</p>{{end}}
</header>
{{- end}}
{{- range .Blocks}}
{{- if .Board}}
<div class="export-block export-board-block" id="{{.ID}}">
<div class="export-board-row">
{{- with .Left}}<div class="export-board-side" style="{{.Style}}">{{.Text}}</div>{{end}}
<div class="export-board-center"><img class="export-board-image" alt="{{.ID}}" src="{{.Image}}"></div>
{{- with .Right}}<div class="export-board-side" style="{{.Style}}">{{.Text}}</div>{{end}}
</div>
</div>
{{- else}}
<div class="export-block export-text" id="{{.ID}}" style="{{.Style}}">{{.HTML}}</div>
{{- end}}
{{- end}}
</section>
{{- end}}
</div>
</body>
</html>
`))

type exportData struct {
	Title string
	CSS   template.CSS
	Pages []exportPage
}

type exportPage struct {
	ID     string
	Main   *styledText
	Sub    *styledText
	Blocks []exportBlock
}

type styledText struct {
	Text  string
	Style template.CSS
}

type exportBlock struct {
	ID    string
	Style template.CSS
	HTML  template.HTML
	Board bool
	Image template.URL
	Left  *styledText
	Right *styledText
}

func exportHTML(doc document.Document, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := writeHTML(file, doc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeHTML(w io.Writer, doc document.Document) error {
	data := exportData{Title: "Lecture", CSS: template.CSS(assets.ExportCSS)}
	for _, page := range doc.Pages {
		ep := exportPage{ID: page.ID}
		if page.Heading != nil {
			ep.Main = headingText(page.Heading.Main)
			ep.Sub = headingText(page.Heading.Sub)
			if ep.Main != nil && data.Title == "Lecture" {
				data.Title = ep.Main.Text
			}
		}
		for _, block := range page.Blocks {
			eb, err := exportBlockFor(block)
			if err != nil {
				return err
			}
			ep.Blocks = append(ep.Blocks, eb)
		}
		data.Pages = append(data.Pages, ep)
	}
	return exportTemplate.Execute(w, data)
}

func headingText(segment document.HeadingSegment) *styledText {
	if !segment.Enabled || segment.Content == "" {
		return nil
	}
	return &styledText{Text: segment.Content, Style: cssFor(segment.Style)}
}

func exportBlockFor(block document.Block) (exportBlock, error) {
	switch b := block.(type) {
	case *document.TextBlock:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(b.Content), &buf); err != nil {
			return exportBlock{}, fmt.Errorf("render %s: %w", b.ID, err)
		}
		return exportBlock{ID: b.ID, Style: cssFor(b.Style), HTML: template.HTML(buf.String())}, nil

	case *document.BoardBlock:
		uri, err := boardImageURI(b)
		if err != nil {
			return exportBlock{}, err
		}
		eb := exportBlock{ID: b.ID, Board: true, Image: uri}
		if text, ok := b.SideText(document.SideLeft); ok && b.LeftStyle != nil {
			eb.Left = &styledText{Text: text, Style: cssFor(*b.LeftStyle)}
		}
		if text, ok := b.SideText(document.SideRight); ok && b.RightStyle != nil {
			eb.Right = &styledText{Text: text, Style: cssFor(*b.RightStyle)}
		}
		return eb, nil
	}
	return exportBlock{}, fmt.Errorf("unknown block %T", block)
}

// cssFor renders a style as inline CSS, dropping characters that could end
// the declaration.
func cssFor(style document.TextStyle) template.CSS {
	clean := strings.NewReplacer(`"`, "", `'`, "", ";", "", "{", "", "}", "", "<", "", ">", "", `\`, "")
	var decls []string
	if style.Family != "" {
		decls = append(decls, fmt.Sprintf(`font-family: "%s"`, clean.Replace(style.Family)))
	}
	if style.Size > 0 {
		decls = append(decls, fmt.Sprintf("font-size: %gpx", style.Size))
	}
	if style.Color != "" {
		decls = append(decls, "color: "+clean.Replace(style.Color))
	}
	return template.CSS(strings.Join(decls, "; "))
}
