//go:build darwin

package appearance

func desktopDetector() Detector { return &DarwinDetector{} }
