package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeBoard
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpExportPNG FileOperation = iota
	FileOpExportHTML
)

type ConfirmAction int

const (
	ConfirmRemovePage ConfirmAction = iota
	ConfirmRemoveBlock
	ConfirmQuit
	ConfirmOverwriteFile
)

type EditTarget int

const (
	EditTextBlock EditTarget = iota
	EditHeadingMain
	EditHeadingSub
	EditSideLeft
	EditSideRight
)

const (
	defaultUndoDepth = 100
	fontSizeStep     = 2
	minFontSize      = 8
	sidebarWidth     = 18
)

var textColors = []string{"#1f2937", "#b91c1c", "#1d4ed8", "#15803d", "#a16207", "#7e22ce"}

var fontFamilies = []string{"Microsoft YaHei", "PingFang SC", "SimSun", "KaiTi", "sans-serif"}
