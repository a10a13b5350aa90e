// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// Stats returns information about the engine.
func (z *ZDD) Stats() string {
	res := fmt.Sprintf("Vmax:       %d\n", z.Vmax())
	res += fmt.Sprintf("Allocated:  %s slots (%s)\n",
		humanize.Comma(int64(len(z.pool))),
		humanize.Bytes(uint64(len(z.pool))*uint64(unsafe.Sizeof(node{}))))
	res += fmt.Sprintf("Used:       %s\n", humanize.Comma(int64(z.freenode)))
	res += fmt.Sprintf("Produced:   %s\n", humanize.Comma(int64(z.produced)))
	res += fmt.Sprintf("Stack:      %d\n", len(z.stack))
	return res
}

// Dump returns a textual listing of the topmost ZDD region, one node per
// line.
func (z *ZDD) Dump() string {
	if len(z.stack) == 0 {
		return ""
	}
	r := z.stack[len(z.stack)-1]
	if r == 0 {
		return "False\n"
	}
	if r == 1 {
		return "True\n"
	}
	var buf strings.Builder
	for i := r; i < z.freenode; i++ {
		fmt.Fprintf(&buf, "I%d: !%d ? %d : %d\n", i, z.pool[i].v, z.pool[i].lo, z.pool[i].hi)
	}
	return buf.String()
}

// PrintDot writes a graph-like description of the topmost ZDD in the DOT
// format. LO branches are dotted, HI branches solid, and edges to the FALSE
// constant are omitted, following the usual drawing convention for ZDDs.
func (z *ZDD) PrintDot(out io.Writer) error {
	if mesg := z.Error(); mesg != "" {
		return fmt.Errorf("%s", mesg)
	}
	if len(z.stack) == 0 {
		return fmt.Errorf("PrintDot called on an empty stack")
	}
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "1 [shape=box, label=\"1\", style=filled, shape=box, height=0.3, width=0.3];")
	r := z.stack[len(z.stack)-1]
	if r >= 2 {
		for i := r; i < z.freenode; i++ {
			fmt.Fprintf(w, "%d %s\n", i, dotlabel(i, z.pool[i].v))
			if z.pool[i].lo != 0 {
				fmt.Fprintf(w, "%d -> %d [style=dotted];\n", i, z.pool[i].lo)
			}
			if z.pool[i].hi != 0 {
				fmt.Fprintf(w, "%d -> %d [style=filled];\n", i, z.pool[i].hi)
			}
		}
	}
	fmt.Fprintln(w, "}")
	return w.Flush()
}

func dotlabel(n uint32, v uint16) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, v, n)
}
