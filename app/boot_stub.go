//go:build !(tinygo && bootdebug)

package app

import "sparkwidgets/hal"

func bootDiagStart(hal.HAL)      {}
func bootScreen(hal.HAL, string) {}
