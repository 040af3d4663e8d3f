package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/cache-nez/scallion"
	"github.com/cache-nez/scallion/ll1"
	"github.com/cache-nez/scallion/scanner"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 cache-nez

*/

// tracer traces with key 'scallion.llcalc'.
func tracer() tracing.Trace {
	return tracing.Select("scallion.llcalc")
}

// We provide a simple integer expression grammar as a demonstration of the
// ll1 combinators:
//
//	Expr   ➞ Term (SumOp Term)*
//	Term   ➞ Factor (ProdOp Factor)*
//	Factor ➞ number  |  ( Expr )
//	SumOp  ➞ +  |  -
//	ProdOp ➞ *  |  /
//
// Token kinds are the ones of scanner.GoTokenizer.
func makeCalculator() *ll1.Syntax {
	var expr *ll1.Syntax
	expr = ll1.Recursive(func() *ll1.Syntax {
		number := ll1.Elem(scanner.Int).Map(func(v interface{}) interface{} {
			n, _ := strconv.Atoi(lexemeOf(v))
			return n
		})
		paren := ll1.Elem('(').Void().
			SkipLeft(expr).
			SkipRight(ll1.Elem(')').Void())
		factor := number.Or(paren)
		term := factor.Seq(ll1.Many(prodOp().Seq(factor))).Map(foldChain)
		return term.Seq(ll1.Many(sumOp().Seq(term))).Map(foldChain)
	})
	return expr
}

func sumOp() *ll1.Syntax {
	return ll1.OneOf(ll1.Elem('+'), ll1.Elem('-'))
}

func prodOp() *ll1.Syntax {
	return ll1.OneOf(ll1.Elem('*'), ll1.Elem('/'))
}

func lexemeOf(v interface{}) string {
	if tok, ok := v.(interface{ Lexeme() string }); ok {
		return tok.Lexeme()
	}
	return fmt.Sprintf("%v", v)
}

// foldChain reduces the value of `operand (op operand)*` left to right.
func foldChain(v interface{}) interface{} {
	p := v.(ll1.Pair)
	acc := p.First.(int)
	rest, _ := p.Second.([]interface{})
	for _, el := range rest {
		step := el.(ll1.Pair)
		op := step.First.(scallion.Token)
		rhs := step.Second.(int)
		switch op.Kind() {
		case '+':
			acc += rhs
		case '-':
			acc -= rhs
		case '*':
			acc *= rhs
		case '/':
			acc /= rhs
		}
	}
	return acc
}

// main() starts an interactive CLI, where users may enter integer
// expressions. The REPL parses them with the ll1 engine, prints the value,
// and on errors prints what the parser would have accepted instead.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to llcalc") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	calc := makeCalculator()
	if !calc.IsLL1() {
		for _, c := range calc.Conflicts() {
			pterm.Error.Println(c.String())
		}
		return
	}
	//
	repl, err := readline.New("llcalc> ")
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	defer repl.Close()
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			if err != io.EOF {
				tracer().Errorf(err.Error())
			}
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			command(calc, line)
			continue
		}
		eval(calc, line)
	}
}

// eval parses one input line and prints the outcome.
func eval(calc *ll1.Syntax, line string) {
	tz := scanner.GoTokenizer("llcalc", strings.NewReader(line))
	result := calc.Apply(scanner.GoStream(tz))
	switch r := result.(type) {
	case ll1.Parsed:
		pterm.Info.Println(fmt.Sprintf("= %v", r.Value))
	case ll1.UnexpectedToken:
		pterm.Error.Println(fmt.Sprintf("cannot continue with %q, expected one of %s",
			lexemeOf(r.Token), kindList(r.Rest.First())))
	case ll1.UnexpectedEnd:
		pterm.Error.Println(fmt.Sprintf("input stopped short, expected one of %s",
			kindList(r.Rest.First())))
		if trail, ok := r.Rest.Trails().Next(); ok {
			pterm.Info.Println(fmt.Sprintf("a shortest continuation: %s",
				kindList(trail.(scallion.Trail))))
		}
	}
}

// command handles the ':'-prefixed REPL commands.
func command(calc *ll1.Syntax, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":trails":
		n := 5
		if len(fields) > 1 {
			if m, err := strconv.Atoi(fields[1]); err == nil {
				n = m
			}
		}
		trails := calc.Trails()
		for _, trail := range trails.Take(n) {
			pterm.Info.Println(kindList(trail.(scallion.Trail)))
		}
	case ":kinds":
		pterm.Info.Println(kindList(calc.Kinds()))
	default:
		pterm.Error.Println("commands are :trails [n] and :kinds")
	}
}

// kindList renders a list of kinds, spelling out the rune-typed ones.
func kindList(kinds []scallion.Kind) string {
	var sb strings.Builder
	for i, k := range kinds {
		if i > 0 {
			sb.WriteString(" ")
		}
		switch kind := k.(type) {
		case rune:
			if kind == scanner.Int {
				sb.WriteString("number")
			} else {
				sb.WriteString(fmt.Sprintf("%q", string(kind)))
			}
		default:
			sb.WriteString(fmt.Sprintf("%v", k))
		}
	}
	return sb.String()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	}
	return tracing.LevelInfo
}
