package core

import (
	"errors"
)

var (
	// context or backend initialization failed
	ErrBuild = errors.New("context build failed")
	// missing or undecodable asset
	ErrResourceLoad = errors.New("resource load failed")
	// renderer submission failed
	ErrDraw = errors.New("draw failed")
	// invalid geometry handed to a mesh builder
	ErrMeshBuild = errors.New("mesh build failed")
	ErrAudio     = errors.New("audio failure")
)
