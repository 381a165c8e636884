package main

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textarea"

	"lectern/internal/document"
)

type model struct {
	width          int
	height         int
	store          *document.Store
	history        *History
	config         *Config
	log            *slog.Logger
	mode           Mode
	help           bool
	selectedBlock  int
	boardX         int
	boardY         int
	editor         textarea.Model
	editTarget     EditTarget
	editBlockID    string
	filename       string
	fileOp         FileOperation
	confirmAction  ConfirmAction
	confirmPageID  string
	confirmBlockID string
	errorMessage   string
	successMessage string
}

// stone is the move record the board editor and exporters write and read.
// The document stores moves as opaque JSON.
type stone struct {
	X      int             `json:"x"`
	Y      int             `json:"y"`
	Player document.Player `json:"player"`
}

// region is an inclusive rectangle of board points.
type region struct {
	X0, Y0, X1, Y1 int
}
