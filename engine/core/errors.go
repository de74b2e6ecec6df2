package core

import (
	"errors"
)

var (
	ErrNotInitialized  = errors.New("system not initialized")
	ErrEventQueueFull  = errors.New("event queue is full")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrAssetNotLoaded  = errors.New("asset not loaded")
	ErrNoLoader        = errors.New("no loader registered for resource type")
	ErrUnexpectedData  = errors.New("resource data has an unexpected type")
	ErrPathfindTimeout = errors.New("pathfinding timed out")
	ErrPathNotFound    = errors.New("no path found")
	ErrUnknown         = errors.New("unknown")
)
