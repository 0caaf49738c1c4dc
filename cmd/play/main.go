// Command play runs a terminal game against the engine.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"drop_four/internal/domain/board"
	"drop_four/internal/usecase/engine"
)

const (
	cellWidth   = 5
	cellHeight  = 2
	boardWidth  = board.Cols*cellWidth + 1
	boardHeight = board.Rows * cellHeight
	padTop      = 4
	padLeft     = 1
)

const (
	hozTopRune = '━'
	hozBotRune = '▅'
	verRune    = '┃'
	space      = ' '
)

const (
	humanPiece  = "🔵"
	enginePiece = "🔴"
)

type ui struct {
	screen   tcell.Screen
	style    tcell.Style
	eng      *engine.Engine
	board    board.Board
	inputCol int
	gameOver bool
	status   string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	u := ui{
		screen:   screen,
		style:    style,
		eng:      engine.New(engine.Config{}),
		inputCol: board.Cols / 2,
	}
	u.draw()

	for {
		event := screen.PollEvent()
		ev, isEventKey := event.(*tcell.EventKey)
		if !isEventKey {
			continue
		}

		switch ev.Key() {
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return nil
			case 'n':
				u.newGame()
			case ' ':
				u.dropPiece()
			}
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return nil
		case tcell.KeyLeft:
			u.moveMarker(-1)
		case tcell.KeyRight:
			u.moveMarker(1)
		case tcell.KeyEnter, tcell.KeyDown:
			u.dropPiece()
		}
	}
}

func (u *ui) newGame() {
	u.board = board.Board{}
	u.inputCol = board.Cols / 2
	u.gameOver = false
	u.status = ""
	u.draw()
}

func (u *ui) moveMarker(delta int) {
	if u.gameOver {
		return
	}
	next := u.inputCol + delta
	if next < 0 || next >= board.Cols {
		return
	}
	u.inputCol = next
	u.draw()
}

// dropPiece plays the human move in the marker column, then lets the
// engine answer.
func (u *ui) dropPiece() {
	if u.gameOver {
		return
	}

	next, row, err := u.board.Apply(u.inputCol, board.Self)
	if err != nil {
		u.screen.Beep()
		return
	}
	u.board = next

	switch {
	case u.board.CheckWin(board.Self, row, u.inputCol):
		u.gameOver = true
		u.status = "You win! <n> for another game"
	case u.board.Full():
		u.gameOver = true
		u.status = "Draw. <n> for another game"
	default:
		u.draw()
		time.Sleep(150 * time.Millisecond)
		u.engineReply()
	}
	u.draw()
}

// engineReply decides on the flipped board, where the engine sees its own
// pieces as the side to move.
func (u *ui) engineReply() {
	col, err := u.eng.Decide(u.board.Flip())
	if err != nil {
		u.gameOver = true
		u.status = "Draw. <n> for another game"
		return
	}
	next, row, err := u.board.Apply(col, board.Opponent)
	if err != nil {
		u.screen.Beep()
		return
	}
	u.board = next

	switch {
	case u.board.CheckWin(board.Opponent, row, col):
		u.gameOver = true
		u.status = "Engine wins. <n> for another game"
	case u.board.Full():
		u.gameOver = true
		u.status = "Draw. <n> for another game"
	}
}

func (u *ui) draw() {
	u.drawGrid()
	u.drawPieces()

	u.print(10, 1, "Drop Four")
	u.print(0, boardHeight+padTop+1, "   ①    ②    ③    ④    ⑤    ⑥    ⑦")
	u.print(boardWidth+3, padTop-1, "<n> new game   <q> quit")
	u.print(boardWidth+3, padTop+1, pad(u.status, 40))

	if !u.gameOver {
		u.print(padLeft+2+cellWidth*u.inputCol, padTop-1, humanPiece)
	}

	u.screen.Show()
}

func (u *ui) drawGrid() {
	u.screen.Clear()

	style := u.style.Foreground(tcell.ColorGrey)

	for h := 0; h <= boardHeight; h++ {
		for w := 0; w < boardWidth; w++ {
			u.screen.SetContent(w+padLeft, h+padTop, space, nil, style)

			if h == 0 || h%cellHeight == 0 {
				u.screen.SetContent(w+padLeft, h+padTop, hozTopRune, nil, style)
				if h == boardHeight {
					u.screen.SetContent(w+padLeft, h+padTop, hozBotRune, nil, style)
				}
			}

			if w == 0 || w%cellWidth == 0 {
				u.screen.SetContent(w+padLeft, h+padTop, verRune, nil, style)
			}
		}
	}
}

func (u *ui) drawPieces() {
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			x := padLeft + 2 + cellWidth*c
			y := padTop + 1 + cellHeight*r
			switch u.board.At(r, c) {
			case board.Self:
				u.print(x, y, humanPiece)
			case board.Opponent:
				u.print(x, y, enginePiece)
			}
		}
	}
}

func (u *ui) print(x, y int, msg string) {
	for _, c := range msg {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		u.screen.SetContent(x, y, c, comb, u.style)
		x += w
	}
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
