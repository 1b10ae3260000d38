//go:build tinygo

package main

import (
	"efidoom/app"
	"efidoom/hal"
)

func main() {
	app.Run(hal.New())
}
