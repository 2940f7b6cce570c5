package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/gowebpki/jcs"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const snapshotVersion = 1

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

const snapshotSchemaURL = "https://plotterm.local/schemas/canvas.schema.json"

var (
	snapshotSchemaOnce sync.Once
	snapshotSchema     *jsonschema.Schema
	snapshotSchemaErr  error
)

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	snapshotSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(snapshotSchemaURL, bytes.NewReader([]byte(snapshotSchemaJSON))); err != nil {
			snapshotSchemaErr = fmt.Errorf("snapshot schema load failed: %w", err)
			return
		}
		snapshotSchema, snapshotSchemaErr = c.Compile(snapshotSchemaURL)
	})
	return snapshotSchema, snapshotSchemaErr
}

type canvasFile struct {
	Version   int          `json:"version"`
	Selection string       `json:"selection,omitempty"`
	Viewport  Viewport     `json:"viewport"`
	Grid      GridSettings `json:"grid"`
	Elements  []Element    `json:"elements"`
}

// MarshalCanvas encodes the canvas in canonical JSON (RFC 8785) so saved
// files are stable across saves.
func (c *Canvas) MarshalCanvas() ([]byte, error) {
	file := canvasFile{
		Version:  snapshotVersion,
		Viewport: c.viewport.Viewport(),
		Grid:     c.grid,
		Elements: c.Export(),
	}
	raw, err := json.Marshal(file)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(raw)
}

// UnmarshalCanvas validates data and replaces the canvas contents.
func (c *Canvas) UnmarshalCanvas(data []byte) error {
	schema, err := compiledSnapshotSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	var file canvasFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := c.Import(file.Elements); err != nil {
		return err
	}
	c.viewport.Restore(file.Viewport)
	if file.Grid.Spacing > 0 {
		c.grid = file.Grid.normalized()
	}
	c.changed()
	return nil
}

func (c *Canvas) SaveToFile(filename string) error {
	data, err := c.MarshalCanvas()
	if err != nil {
		return fmt.Errorf("encode canvas: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

func (c *Canvas) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return c.UnmarshalCanvas(data)
}
