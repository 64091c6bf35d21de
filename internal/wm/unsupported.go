//go:build !windows

package wm

import (
	"fmt"
	"runtime"
)

func newPlatform(Options) (WindowManager, error) {
	return nil, fmt.Errorf("window composition effects are not supported on %s", runtime.GOOS)
}
