//go:build tinygo

package main

import (
	"sparkwidgets/app"
	"sparkwidgets/hal"
)

func main() {
	app.Run(hal.New())
}
