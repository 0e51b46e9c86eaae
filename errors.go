package main

import "errors"

// Failure kinds surfaced to API callers. Every one of them ends the current
// request; nothing is retried.
var (
	errModelLoad       = errors.New("model load failed")
	errUnknownCategory = errors.New("unknown category")
	errPrediction      = errors.New("prediction failed")
	errRender          = errors.New("report render failed")
	errReportNotFound  = errors.New("report not found")
)
