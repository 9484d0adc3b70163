package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// progressBar renders upload progress on a single terminal line.
type progressBar struct {
	mu    sync.Mutex
	out   io.Writer
	width int
	drawn bool
}

func newProgressBar(out io.Writer, width int) *progressBar {
	return &progressBar{out: out, width: width}
}

func (p *progressBar) Update(percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	percent = min(max(percent, 0), 100)
	p.drawn = true
	filled := p.width * percent / 100
	fmt.Fprintf(p.out, "\rUploading [%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(" ", p.width-filled), percent)
}

// Done ends the progress line if anything was drawn.
func (p *progressBar) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		fmt.Fprintln(p.out)
	}
}
