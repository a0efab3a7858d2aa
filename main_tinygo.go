//go:build tinygo

package main

import (
	"pager/app"
	"pager/hal"
	"pager/internal/config"
)

func main() {
	app.Run(hal.New(), config.Default())
}
