package core

import (
	"errors"
	"strings"
)

func asError(err error, target **Error) bool {
	return errors.As(err, target)
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
