package core

import "errors"

var (
	ErrGroupNotFound = errors.New("particle group not found")
	ErrGroupExists   = errors.New("particle group already exists")
)
