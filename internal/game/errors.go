package game

import "errors"

var (
	ErrNameTaken     = errors.New("name is already taken")
	ErrAlreadyJoined = errors.New("connection already controls a player")
	ErrNotJoined     = errors.New("connection has not joined")
)
