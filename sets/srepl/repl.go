package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/refsets"
	"github.com/npillmayer/refsets/holes"
	"github.com/npillmayer/refsets/lazy"
	"github.com/npillmayer/refsets/ring"
	"github.com/npillmayer/refsets/sets"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

// maxShown is the maximum number of range elements printed.
const maxShown = 100

// main() starts an interactive CLI ("S.REPL"), where users may enter commands
// to create and modify collections. S.REPL will print the result of every
// command. Setting the trace level to Debug will make compactions visible.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to SREPL")    // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	level := traceLevel(*tlevel)
	for _, key := range []string{"refsets.srepl", "refsets.holes", "refsets.sets", "refsets.lazy", "refsets.ring"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	//
	// set up REPL
	repl, err := readline.New("srepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := NewIntp()
	intp.repl = repl
	//
	// load an init file and start receiving commands
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	for _, line := range strings.Split(strings.Join(flag.Args(), " "), ";") {
		if line = strings.TrimSpace(line); line != "" {
			intp.Eval(line)
		}
	}
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	lastValue string // output of the last successful command
	repl      *readline.Instance
	symbols   *SymbolTable
	ring      *ring.Ring
}

// NewIntp creates an interpreter with an empty symbol table and an empty ring.
func NewIntp() *Intp {
	return &Intp{
		symbols: NewSymbolTable(),
		ring:    ring.New(8),
	}
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates a command, given on a line by itself. It returns true if the
// user wants to quit.
func (intp *Intp) Eval(line string) (bool, error) {
	tokens, err := tokenize(line)
	if err == nil && len(tokens) > 0 {
		var out string
		if tokens[0].typ != tokWord {
			err = refsets.Errorf(refsets.InvalidArgument, "not a command: %s", tokens[0])
		} else if tokens[0].lexeme == "quit" {
			return true, nil
		} else {
			out, err = intp.execute(tokens[0].lexeme, tokens[1:])
		}
		if err == nil {
			intp.lastValue = out
			if out != "" {
				pterm.Info.Println(out)
			}
			return false, nil
		}
	}
	if err != nil {
		tracer().Debugf("error code %s", refsets.CodeOf(err))
		pterm.Error.Println(err.Error())
	}
	return false, err
}

type command struct {
	args int // minimum number of arguments
	run  func(intp *Intp, args []token) (string, error)
	help string
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":    {0, (*Intp).help, "help                          list commands"},
		"list":    {0, (*Intp).list, "list                          list collections"},
		"new":     {1, (*Intp).newCollection, "new NAME [set|queue|stack] [multi] [MODE] [THRESHOLD]"},
		"add":     {2, (*Intp).add, "add NAME v…                   add values"},
		"remove":  {2, (*Intp).remove, "remove NAME v [COUNT]         remove (COUNT occurrences of) v"},
		"has":     {2, (*Intp).has, "has NAME v                    count occurrences of v"},
		"take":    {1, (*Intp).take, "take NAME                     dequeue from a queue, pop from a stack"},
		"peek":    {1, (*Intp).peek, "peek NAME                     next value to take"},
		"compact": {1, (*Intp).compact, "compact NAME                  reclaim all holes"},
		"clear":   {1, (*Intp).clear, "clear NAME                    remove all values"},
		"show":    {1, (*Intp).show, "show NAME                     display as a tree"},
		"sorted":  {1, (*Intp).sorted, "sorted NAME                   values in lexicographic order"},
		"stats":   {1, (*Intp).stats, "stats NAME                    internal state"},
		"range":   {2, (*Intp).rangeCmd, "range FROM TO [STEP]          numeric range"},
		"ring":    {1, (*Intp).ringCmd, "ring push v…|pop|show|compact  24-bit FIFO ring"},
	}
}

func (intp *Intp) execute(cmd string, args []token) (string, error) {
	c, ok := commands[cmd]
	if !ok {
		return "", refsets.Errorf(refsets.InvalidOperation, "unknown command '%s', try 'help'", cmd)
	}
	if len(args) < c.args {
		return "", refsets.Errorf(refsets.InvalidArgument, "usage: %s", c.help)
	}
	tracer().Debugf("%s %v", cmd, args)
	return c.run(intp, args)
}

// --- Commands --------------------------------------------------------------

func (intp *Intp) help(args []token) (string, error) {
	var b strings.Builder
	for _, name := range []string{"new", "add", "remove", "has", "take", "peek", "compact",
		"clear", "show", "sorted", "stats", "list", "range", "ring", "help"} {
		b.WriteString(commands[name].help)
		b.WriteString("\n")
	}
	b.WriteString("quit")
	return b.String(), nil
}

func (intp *Intp) list(args []token) (string, error) {
	var entries []string
	intp.symbols.Each(func(tag *Tag) {
		entries = append(entries, fmt.Sprintf("%s:%s(%d)", tag.Name(), tag.Kind, tag.Coll.Len()))
	})
	return strings.Join(entries, " "), nil
}

func (intp *Intp) newCollection(args []token) (string, error) {
	name := args[0].lexeme
	kind := SetKind
	var opts []holes.Option
	for _, arg := range args[1:] {
		if arg.typ == tokNumber {
			n, err := atoi(arg)
			if err != nil {
				return "", err
			}
			opts = append(opts, holes.HoleThreshold(n))
			continue
		}
		if k, ok := kindFromString(arg.lexeme); ok {
			kind = k
			continue
		}
		if arg.lexeme == "multi" {
			opts = append(opts, holes.Deduplicate(false))
			continue
		}
		mode, err := holes.ModeFromString(arg.lexeme)
		if err != nil {
			return "", err
		}
		opts = append(opts, holes.Compaction(mode))
	}
	var coll collection
	var err error
	switch kind {
	case QueueKind:
		coll, err = sets.NewQueueSet[string](opts...)
	case StackKind:
		coll, err = sets.NewStackSet[string](opts...)
	default:
		coll, err = sets.NewOrderedSet[string](opts...)
	}
	if err != nil {
		return "", err
	}
	if old := intp.symbols.InsertTag(NewTag(name, kind, coll)); old != nil {
		tracer().Infof("replacing %v", old)
	}
	st := coll.Stats()
	return fmt.Sprintf("%s = new %s, mode %s, threshold %d, dedup %v", name, kind, st.Mode,
		st.Threshold, st.Dedup), nil
}

func (intp *Intp) add(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	n := 0
	for _, v := range args[1:] {
		var added bool
		switch c := tag.Coll.(type) {
		case *sets.QueueSet[string]:
			added = c.Enqueue(v.lexeme)
		case *sets.StackSet[string]:
			added = c.Push(v.lexeme)
		case *sets.OrderedSet[string]:
			added = c.Add(v.lexeme) == 1
		}
		if added {
			n++
		}
	}
	return fmt.Sprintf("added %d of %d", n, len(args)-1), nil
}

func (intp *Intp) remove(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	v := args[1].lexeme
	removed := false
	if len(args) > 2 {
		n, err := atoi(args[2])
		if err != nil {
			return "", err
		}
		if removed, err = tag.Coll.RemoveN(v, n); err != nil {
			return "", err
		}
	} else {
		removed = tag.Coll.Remove(v)
	}
	return fmt.Sprintf("%v", removed), nil
}

func (intp *Intp) has(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	return strconv.Itoa(tag.Coll.Count(args[1].lexeme)), nil
}

func (intp *Intp) take(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	var v string
	var ok bool
	switch c := tag.Coll.(type) {
	case *sets.QueueSet[string]:
		v, ok = c.Dequeue()
	case *sets.StackSet[string]:
		v, ok = c.Pop()
	default:
		return "", refsets.Errorf(refsets.InvalidOperation, "cannot take from %s '%s'", tag.Kind, tag.Name())
	}
	if !ok {
		return "", refsets.Errorf(refsets.InvalidOperation, "%s '%s' is empty", tag.Kind, tag.Name())
	}
	return v, nil
}

func (intp *Intp) peek(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	var v string
	var ok bool
	switch c := tag.Coll.(type) {
	case *sets.QueueSet[string]:
		v, ok = c.Peek()
	case *sets.StackSet[string]:
		v, ok = c.Peek()
	default:
		return "", refsets.Errorf(refsets.InvalidOperation, "cannot peek into %s '%s'", tag.Kind, tag.Name())
	}
	if !ok {
		return "nil", nil
	}
	return v, nil
}

func (intp *Intp) compact(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	tag.Coll.Compact()
	return tag.Coll.String(), nil
}

func (intp *Intp) clear(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	tag.Coll.Clear()
	return tag.Coll.String(), nil
}

func (intp *Intp) sorted(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	return strings.Join(tag.Coll.Seq().Sorted(utils.StringComparator).Slice(), " "), nil
}

func (intp *Intp) stats(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	st := tag.Coll.Stats()
	return fmt.Sprintf("len=%d holes=%d slots=%d threshold=%d mode=%s dedup=%v",
		st.Len, st.Holes, st.Slots, st.Threshold, st.Mode, st.Dedup), nil
}

// show is a helper command to display a collection as a tree on a terminal.
func (intp *Intp) show(args []token) (string, error) {
	tag, err := intp.resolve(args[0])
	if err != nil {
		return "", err
	}
	pterm.Println(tag.Name())
	root := pterm.NewTreeFromLeveledList(leveledCollection(tag))
	pterm.DefaultTree.WithRoot(root).Render()
	return tag.Coll.String(), nil
}

func leveledCollection(tag *Tag) pterm.LeveledList {
	st := tag.Coll.Stats()
	ll := pterm.LeveledList{
		{Level: 0, Text: fmt.Sprintf("%s (%s)", tag.Kind, st.Mode)},
		{Level: 1, Text: fmt.Sprintf("values (%d)", st.Len)},
	}
	for e := range lazy.Entries(tag.Coll.Seq()).All() {
		ll = append(ll, pterm.LeveledListItem{
			Level: 2,
			Text:  fmt.Sprintf("#%d %s", e.Index, e.Value),
		})
	}
	ll = append(ll,
		pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("slots %s", tag.Coll)},
		pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("holes %d of %d", st.Holes, st.Threshold)},
	)
	return ll
}

func (intp *Intp) rangeCmd(args []token) (string, error) {
	integral := true
	for _, a := range args {
		if a.typ != tokNumber {
			return "", refsets.Errorf(refsets.InvalidArgument, "not a number: %s", a)
		}
		integral = integral && !strings.Contains(a.lexeme, ".")
	}
	if integral {
		bounds := make([]int, len(args))
		for i, a := range args {
			n, err := atoi(a)
			if err != nil {
				return "", err
			}
			bounds[i] = n
		}
		seq, err := lazy.FromRange(bounds[0], bounds[1], bounds[2:]...)
		if err != nil {
			return "", err
		}
		return showRange(seq), nil
	}
	bounds := make([]float64, len(args))
	for i, a := range args {
		x, err := strconv.ParseFloat(a.lexeme, 64)
		if err != nil {
			return "", refsets.Errorf(refsets.InvalidArgument, "not a number: %s", a)
		}
		bounds[i] = x
	}
	seq, err := lazy.FromRange(bounds[0], bounds[1], bounds[2:]...)
	if err != nil {
		return "", err
	}
	return showRange(seq), nil
}

func showRange[N lazy.Number](seq lazy.Seq[N]) string {
	strs := lazy.Map(seq.Take(maxShown+1), func(x N) string {
		return fmt.Sprintf("%v", x)
	}).Slice()
	if len(strs) > maxShown {
		strs[maxShown] = "…"
	}
	return strings.Join(strs, " ")
}

func (intp *Intp) ringCmd(args []token) (string, error) {
	switch args[0].lexeme {
	case "push":
		for _, a := range args[1:] {
			v, err := strconv.ParseUint(a.lexeme, 10, 32)
			if err != nil {
				return "", refsets.Errorf(refsets.InvalidArgument, "not a ring value: %s", a)
			}
			if err := intp.ring.Push(uint32(v)); err != nil {
				return "", err
			}
		}
	case "pop":
		v, ok := intp.ring.Pop()
		if !ok {
			return "", refsets.Errorf(refsets.InvalidOperation, "ring is empty")
		}
		return strconv.FormatUint(uint64(v), 10), nil
	case "compact":
		intp.ring.Compact()
	case "show":
	default:
		return "", refsets.Errorf(refsets.InvalidOperation, "unknown ring operation '%s'", args[0])
	}
	return intp.ring.String(), nil
}

// --- Helpers ---------------------------------------------------------------

func (intp *Intp) resolve(name token) (*Tag, error) {
	tag := intp.symbols.ResolveTag(name.lexeme)
	if tag == nil {
		return nil, refsets.Errorf(refsets.Uninitialized, "no collection named '%s'", name)
	}
	return tag, nil
}

func atoi(t token) (int, error) {
	n, err := strconv.Atoi(t.lexeme)
	if err != nil {
		return 0, refsets.Errorf(refsets.InvalidArgument, "not an integer: %s", t)
	}
	return n, nil
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
