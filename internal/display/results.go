package display

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
)

var (
	headerColor = color.RGB(33, 222, 137).Add(color.Bold)
	indexColor  = color.RGB(137, 33, 222).Add(color.Bold)
	pathColor   = color.RGB(222, 137, 33)
)

// Header writes "Searching for files inside <root>".
func Header(out io.Writer, root string) {
	fmt.Fprintln(out, headerColor.Sprintf("Searching for files inside %s", root))
}

// Matches writes one line per path, numbered from 1. Indexes are
// right-aligned to the width of the largest one:
//
//	 9 - /src/a.go
//	10 - /src/b.go
func Matches(out io.Writer, paths []string) error {
	width := len(strconv.Itoa(len(paths)))

	w := bufio.NewWriter(out)
	for i, path := range paths {
		index := strconv.Itoa(i + 1)
		fmt.Fprintf(w, " %*s%s - %s\n",
			width-len(index), "",
			indexColor.Sprint(index),
			pathColor.Sprint(path),
		)
	}
	return w.Flush()
}
