package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeFileInput
	ModeConfirm
	ModeHelp
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmDeleteElement ConfirmAction = iota
	ConfirmQuit
	ConfirmNewCanvas
	ConfirmCloseBuffer
	ConfirmOverwriteFile
)

type ElementKind int

const (
	KindWall ElementKind = iota
	KindZone
	KindText
	KindIcon
	KindIconLabel
	KindBackground
)

type Tool int

const (
	ToolNone Tool = iota
	ToolWall
	ToolZoneEllipse
	ToolZonePolygon
	ToolText
	ToolIcon
	ToolBackground
)

type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

const (
	defaultCanvasWidth   = 800.0
	defaultCanvasHeight  = 600.0
	defaultZoomStep      = 0.1
	defaultDragThreshold = 5.0
	minZoomRatio         = 0.05
	maxZoomRatio         = 20.0

	minPolygonSides     = 3
	maxPolygonSides     = 100
	defaultPolygonSides = 4

	wallLength       = 80.0
	wallThickness    = 10.0
	zoneRadiusX      = 40.0
	zoneRadiusY      = 30.0
	polygonRadius    = 40.0
	iconRadius       = 15.0
	iconLabelOffsetX = -5.0
	iconLabelOffsetY = -9.0
	backgroundWidth  = 200.0
	backgroundHeight = 150.0

	highlightColor       = "#ff0000"
	highlightStrokeWidth = 4.0
)

var kindNames = map[ElementKind]string{
	KindWall:       "wall",
	KindZone:       "zone",
	KindText:       "text",
	KindIcon:       "icon",
	KindIconLabel:  "icon-text",
	KindBackground: "background",
}

func (k ElementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func parseElementKind(s string) (ElementKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// idPrefix matches the prefixes the editor has always used for element ids.
func (k ElementKind) idPrefix() string {
	if k == KindBackground {
		return "bg"
	}
	return k.String()
}

func (t Tool) String() string {
	switch t {
	case ToolWall:
		return "wall"
	case ToolZoneEllipse:
		return "zone (ellipse)"
	case ToolZonePolygon:
		return "zone (polygon)"
	case ToolText:
		return "text"
	case ToolIcon:
		return "icon"
	case ToolBackground:
		return "background"
	default:
		return "none"
	}
}
