package main

import "github.com/gookit/color"

// consoleNotifier is the terminal stand-in for the UI toast surface.
type consoleNotifier struct{}

func (consoleNotifier) Notify(message string) {
	color.Error.Println(message)
}
