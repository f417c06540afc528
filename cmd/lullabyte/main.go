package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/pterm/pterm"

	lullabyte "github.com/alda-pirates/Lullabyte"
)

const (
	appName     = "lullabyte"
	historyFile = ".lullabyte_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("Lullabyte %s REPL\nCtrl+D exits. Type :quit to exit, :env to dump globals.", lullabyte.Version)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(lullabyte.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Lullabyte %s (built %s)

Usage:
  %s run <file.lul.sexp> [-o track]   Run a serialized program.
  %s repl                             Start the REPL.
  %s version                          Print the engine version.

The run command reads the S-expression program tree emitted by the
Lullabyte parser, executes it, and writes the track file (default %q,
overridable with -o or a lullabyte.yml manifest next to the program).

`, lullabyte.Version, lullabyte.BuildDate, appName, appName, appName, lullabyte.DefaultTrackPath)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	out := fs.String("o", "", "track file path (overrides the manifest)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.lul.sexp> [-o track]\n", appName)
		return 2
	}
	file := fs.Arg(0)

	src, err := os.ReadFile(file)
	if err != nil {
		pterm.Error.Printfln("cannot read %s: %v", file, err)
		return 1
	}

	prog, err := lullabyte.DecodeProgram(string(src))
	if err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}

	track := *out
	if track == "" {
		track = trackPathFor(file)
	}

	ip := lullabyte.New(lullabyte.WithTrackPath(track))
	if err := ip.Run(prog); err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}
	return 0
}

// trackPathFor resolves the track file location: an explicit manifest wins,
// otherwise the default path lands next to the program.
func trackPathFor(progFile string) string {
	dir := filepath.Dir(progFile)
	if m, err := findManifest(dir); err == nil && m != nil && m.Track != "" {
		if filepath.IsAbs(m.Track) {
			return m.Track
		}
		return filepath.Join(filepath.Dir(m.Path), m.Track)
	}
	return filepath.Join(dir, lullabyte.DefaultTrackPath)
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	pterm.Info.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := lullabyte.New()

	for {
		code, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}

		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit":
				return 0
			case ":env":
				for _, b := range ip.GlobalSnapshot() {
					fmt.Printf("%s = %s\n", b.Name, lullabyte.FormatValue(b.Value))
				}
			default:
				fmt.Println("unknown command. Type :quit to exit, :env to dump globals.")
			}
			continue
		}

		evalLine(ip, code)
		ln.AppendHistory(code)
	}
}

// evalLine accepts a (var ...) declaration, a statement form, or a bare
// expression form and reports the result.
func evalLine(ip *lullabyte.Interpreter, code string) {
	if strings.HasPrefix(code, "(var ") {
		prog, err := lullabyte.DecodeProgram("(program (globals " + code + ") (funcs))")
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		g := prog.Globals[0]
		if err := ip.DefineGlobal(g.Type, g.Name); err != nil {
			pterm.Error.Println(err.Error())
		}
		return
	}

	if st, err := lullabyte.DecodeStmt(code); err == nil {
		if _, err := ip.ExecStmt(st); err != nil {
			pterm.Error.Println(err.Error())
		}
		return
	}

	e, err := lullabyte.DecodeExpr(code)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	v, err := ip.EvalExpr(e)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	fmt.Println(lullabyte.FormatValue(v))
}
