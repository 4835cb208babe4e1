package gogen

import "errors"

// ErrGenerateGoCode is returned when the documents cannot be turned into Go source.
var ErrGenerateGoCode = errors.New("gogen: generate go code failure")
