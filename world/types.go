package world

import (
	"errors"

	"github.com/katalvlaran/indoornav/geom"
)

// Sentinel errors for world construction and validation.
var (
	// ErrInvalidWorld marks a data-integrity defect in static map data.
	ErrInvalidWorld = errors.New("world: invalid world data")

	// ErrEmptyID indicates an area or node without an id.
	ErrEmptyID = errors.New("world: empty id")

	// ErrDuplicateID indicates two areas or two nodes sharing an id.
	ErrDuplicateID = errors.New("world: duplicate id")

	// ErrUnknownFormat is returned when a world file has an unsupported extension.
	ErrUnknownFormat = errors.New("world: unknown file format")
)

// AreaType classifies a floor area.
type AreaType string

// Known area types. Only AreaEntrance is walkable.
const (
	AreaShop     AreaType = "shop"
	AreaWashroom AreaType = "washroom"
	AreaUtility  AreaType = "utility"
	AreaExit     AreaType = "exit"
	AreaEntrance AreaType = "entrance"
)

// NodeType classifies a vertical-transit node.
type NodeType string

// Known transit node types.
const (
	Stairs    NodeType = "stairs"
	Escalator NodeType = "escalator"
	Lift      NodeType = "lift"
)

// Valid reports whether t is one of the known transit types.
func (t NodeType) Valid() bool {
	switch t {
	case Stairs, Escalator, Lift:
		return true
	}
	return false
}

// LocalizedString maps a language tag ("en", "kn", "hi", ...) to text.
type LocalizedString map[string]string

// In returns the text for lang, falling back to English and then to any
// non-empty entry in tag order.
func (s LocalizedString) In(lang string) string {
	if v := s[lang]; v != "" {
		return v
	}
	if v := s["en"]; v != "" {
		return v
	}
	for _, k := range sortedKeys(s) {
		if s[k] != "" {
			return s[k]
		}
	}
	return ""
}

// FloorArea is a rectangular region of one floor.
type FloorArea struct {
	ID     string          `json:"id" toml:"id"`
	Name   LocalizedString `json:"name" toml:"name"`
	Type   AreaType        `json:"type" toml:"type"`
	Floor  int             `json:"floor" toml:"floor"`
	X      float64         `json:"x" toml:"x"`
	Y      float64         `json:"y" toml:"y"`
	Width  float64         `json:"width" toml:"width"`
	Height float64         `json:"height" toml:"height"`

	// EntrancePoint is the walkable "door" used as the destination when
	// routing to this area.
	EntrancePoint geom.Point `json:"entrancePoint" toml:"entrance"`

	// Gender is set on washrooms ("male", "female").
	Gender string `json:"gender,omitempty" toml:"gender,omitempty"`
}

// Rect returns the closed rectangle covered by a.
func (a FloorArea) Rect() geom.Rect {
	return geom.RectXYWH(a.X, a.Y, a.Width, a.Height)
}

// Blocks reports whether a is an obstacle for walking paths.
func (a FloorArea) Blocks() bool {
	return a.Type != AreaEntrance
}

// Link points from a transit node to its paired node on another floor.
type Link struct {
	Floor int    `json:"floor" toml:"floor"`
	ID    string `json:"id" toml:"id"`
}

// NavigationNode is a stairs, escalator or lift endpoint on one floor.
type NavigationNode struct {
	ID    string   `json:"id" toml:"id"`
	Type  NodeType `json:"type" toml:"type"`
	Floor int      `json:"floor" toml:"floor"`
	X     float64  `json:"x" toml:"x"`
	Y     float64  `json:"y" toml:"y"`
	Links []Link   `json:"links" toml:"links"`
}

// Point returns the node position.
func (n NavigationNode) Point() geom.Point {
	return geom.Point{X: n.X, Y: n.Y, Floor: n.Floor}
}

// LinkTo returns the first link of n that targets floor.
func (n NavigationNode) LinkTo(floor int) (Link, bool) {
	for _, l := range n.Links {
		if l.Floor == floor {
			return l, true
		}
	}
	return Link{}, false
}

// Reaches reports whether n has any link targeting floor.
func (n NavigationNode) Reaches(floor int) bool {
	_, ok := n.LinkTo(floor)
	return ok
}

// File is the on-disk shape of a world description.
type File struct {
	Areas []FloorArea      `json:"areas" toml:"areas"`
	Nodes []NavigationNode `json:"nodes" toml:"nodes"`
}
