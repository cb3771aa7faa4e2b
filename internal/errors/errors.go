package gerr

import "errors"

var (
	ErrAlreadySubscribed = errors.New("submitted email already subscribed")
	ErrBadForm           = errors.New("bad subscription form")
	ErrUnknownDriver     = errors.New("unknown database driver")
)
