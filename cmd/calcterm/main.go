// Command calcterm runs the calculator engine in a terminal.
//
// On a TTY keys act immediately, exactly as on the device (Enter or '=' computes,
// Ctrl+L clears memory, q or Ctrl+C quits). When stdin is not a terminal every line is a
// key script and the display is printed after it.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"sparkwidgets/sparkos/tasks/calc"

	"golang.org/x/term"
)

func main() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		if err := runLines(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := runRaw(fd, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runLines applies each input line as a key script and prints the resulting state.
func runLines(in io.Reader, out io.Writer) error {
	s := calc.NewState()
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "q" {
			return nil
		}
		for _, c := range calc.Script(s, line) {
			fmt.Fprintf(out, "  %s\n", c)
		}
		fmt.Fprintln(out, statusLine(s))
	}
	return sc.Err()
}

func runRaw(fd int, in io.Reader, out io.Writer) error {
	old, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "raw mode unavailable: %v\n", err)
		return runLines(in, out)
	}
	defer term.Restore(fd, old)

	fmt.Fprint(out, "calcterm: q or ctrl+c quits\r\n")
	return rawLoop(in, out)
}

// rawLoop applies raw TTY reads to a fresh calculator until a quit key or EOF.
func rawLoop(in io.Reader, out io.Writer) error {
	s := calc.NewState()
	typist := calc.NewTypist(s)
	redraw(out, s)

	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		if err != nil {
			fmt.Fprint(out, "\r\n")
			if err == io.EOF {
				return nil
			}
			return err
		}
		script, quit := rawScript(buf[:n])
		for _, c := range typist.Type(script) {
			fmt.Fprintf(out, "\r\x1b[K  %s\r\n", c)
		}
		redraw(out, s)
		if quit {
			fmt.Fprint(out, "\r\n")
			return nil
		}
	}
}

// rawScript turns raw TTY bytes into a key script. The terminal sends Enter as '\r',
// which the calculator reads as Ctrl+M, so it becomes '\n'. Bytes after a quit key
// are dropped.
func rawScript(b []byte) (script string, quit bool) {
	var sb strings.Builder
	for _, c := range b {
		switch c {
		case 'q', 0x03, 0x04:
			return sb.String(), true
		case '\r':
			sb.WriteByte('\n')
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), false
}

func redraw(out io.Writer, s *calc.State) {
	fmt.Fprintf(out, "\r\x1b[K%s", statusLine(s))
}

func statusLine(s *calc.State) string {
	var sb strings.Builder
	if s.Memory() != 0 {
		sb.WriteString("[M] ")
	}
	if p := s.PendingText(); p != "" {
		sb.WriteString(p)
		sb.WriteString("  ")
	}
	sb.WriteString(s.Display())
	return sb.String()
}
