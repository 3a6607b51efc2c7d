package tui

import (
	"github.com/tcoelho/intelpost/internal/cache"
)

type researchDoneMsg struct {
	rec *cache.Record
}

type researchErrMsg struct {
	err error
}

type postDoneMsg struct {
	post string
}
