package signal

import "errors"

// Errors returned by signal construction and operations.
var (
	ErrNilDomain    = errors.New("signal: nil domain")
	ErrNilSignal    = errors.New("signal: nil signal")
	ErrEmptyValues  = errors.New("signal: empty values")
	ErrRagged       = errors.New("signal: value rows have differing lengths")
	ErrShape        = errors.New("signal: values do not match domain length")
	ErrAxis         = errors.New("signal: domain axis must be 0 or 1")
	ErrLabels       = errors.New("signal: wrong number of channel labels")
	ErrClipLength   = errors.New("signal: clip bounds do not match channel count")
	ErrClipOrder    = errors.New("signal: clip minimum exceeds clip maximum")
	ErrDomainBounds = errors.New("signal: coordinate outside the interpolation range")
	ErrSinglePoint  = errors.New("signal: resampling needs at least two coordinates")
	ErrNotTwoDim    = errors.New("signal: channel operation on a one-dimensional signal")
	ErrChannels     = errors.New("signal: channel counts do not match")
	ErrAllNaN       = errors.New("signal: too few finite samples in channel")
	ErrZeroIntegral = errors.New("signal: channel integral is zero")
	ErrWindow       = errors.New("signal: bad filter window")
	ErrKind         = errors.New("signal: unknown payload kind")
)
