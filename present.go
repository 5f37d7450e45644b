package darkstar

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dekarrin/darkstar/internal/markup"
	"github.com/dekarrin/rosed"
	"github.com/gookit/color"
)

// consolePresenter implements game.Presenter for a text console. Text is
// wrapped to the output width and its markup coloured; images cannot be shown,
// so at most their file is named.
type consolePresenter struct {
	mu         sync.Mutex
	out        io.Writer
	width      int
	styles     markup.Styles
	showImages bool
}

func newConsolePresenter(out io.Writer, width int, showImages bool) *consolePresenter {
	return &consolePresenter{
		out:        out,
		width:      width,
		styles:     markup.DefaultStyles(),
		showImages: showImages,
	}
}

func (cp *consolePresenter) ShowImage(path string) {
	if !cp.showImages || path == "" {
		return
	}
	cp.write(color.Gray.Sprintf("[image: %s]", path))
}

func (cp *consolePresenter) ShowText(text string) {
	if text == "" {
		return
	}
	cp.write(cp.styles.Render(wrapLines(text, cp.width)))
}

// write outputs s followed by a blank line. Errors are dropped; there is no
// one to report them to from a deferred continuation.
func (cp *consolePresenter) write(s string) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	fmt.Fprintf(cp.out, "%s\n\n", s)
}

// wrapLines wraps each line of text on its own so that the line breaks already
// in it are kept.
func wrapLines(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		if len(lines[i]) > width {
			lines[i] = rosed.Edit(lines[i]).Wrap(width).String()
		}
	}
	return strings.Join(lines, "\n")
}
