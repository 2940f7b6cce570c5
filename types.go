package main

type Buffer struct {
	canvas   *Canvas
	gesture  *Gesture
	filename string
}

type model struct {
	width              int
	height             int
	pointerX           int
	pointerY           int
	buffers            []Buffer
	currentBufferIndex int
	mode               Mode
	helpScroll         int
	tool               Tool
	editText           string
	editCursorPos      int
	filename           string
	fileOp             FileOperation
	openInNewBuffer    bool
	confirmAction      ConfirmAction
	confirmElementID   string
	errorMessage       string
	successMessage     string
	config             *Config
	lastSnapshot       Snapshot
}
