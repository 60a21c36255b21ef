// Package guiapp is the graphical shell: a numeric keypad plus
// operator/function buttons that feed the same expression buffer the
// REPL feeds, so one core evaluates both.
package guiapp

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/mathvm/mathvm/internal/app"
	"github.com/mathvm/mathvm/internal/config"
)

// buttonRows lays out the keypad top to bottom, left to right, the way
// a pocket calculator's grid reads.
var buttonRows = [][]string{
	{"sin(", "cos(", "log(", "sqrt("},
	{"(", ")", ",", "pow("},
	{"7", "8", "9", "/"},
	{"4", "5", "6", "*"},
	{"1", "2", "3", "-"},
	{"0", ".", "ans", "+"},
}

// GUI holds the window and the single expression buffer every button
// and the keyboard both feed.
type GUI struct {
	cfg *config.Config

	App    fyne.App
	Window fyne.Window

	display *widget.Entry
	ans     *float64
}

// Run builds the window and blocks until it's closed.
func Run(cfg *config.Config) {
	g := newGUI(cfg)
	g.Window.ShowAndRun()
}

func newGUI(cfg *config.Config) *GUI {
	myApp := fyneapp.New()
	myWindow := myApp.NewWindow("mathvm")

	g := &GUI{
		cfg:    cfg,
		App:    myApp,
		Window: myWindow,
	}

	g.display = widget.NewEntry()
	g.display.SetPlaceHolder("expression")

	content := container.NewBorder(
		g.display,
		g.buildKeypad(),
		nil, nil,
		nil,
	)

	myWindow.SetContent(content)
	myWindow.Resize(fyne.NewSize(320, 420))
	return g
}

func (g *GUI) buildKeypad() fyne.CanvasObject {
	grid := container.New(layout.NewGridLayoutWithColumns(len(buttonRows[0])))
	for _, row := range buttonRows {
		for _, label := range row {
			label := label
			grid.Add(widget.NewButton(label, func() {
				g.press(label)
			}))
		}
	}

	equals := widget.NewButton("=", g.evaluate)
	clear := widget.NewButton("C", g.clear)

	return container.NewVBox(grid, container.NewGridWithColumns(2, clear, equals))
}

func (g *GUI) press(label string) {
	g.display.SetText(g.display.Text + label)
}

func (g *GUI) clear() {
	g.display.SetText("")
}

func (g *GUI) evaluate() {
	result, err := app.Run([]byte(g.display.Text), g.ans)
	if err != nil {
		g.display.SetText(fmt.Sprintf("error: %s", err))
		return
	}
	g.ans = &result
	g.display.SetText(g.cfg.FormatResult(result))
}
