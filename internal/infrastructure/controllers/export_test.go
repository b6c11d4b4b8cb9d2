package controllers

// WriteReport exports writeReport for testing.
var WriteReport = writeReport //nolint:gochecknoglobals // test export
