package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/brentp/svbench"
	"github.com/brentp/svbench/eval"
	"github.com/brentp/svbench/merge"
	"github.com/brentp/svbench/shared"
	"github.com/valyala/fasttemplate"
)

type progPair struct {
	name string
	help string
	main func()
}

var progs = []progPair{
	{"eval", "merge truth and test VCFs with SURVIVOR and report precision and recall", eval.Main},
	{"score", "report precision and recall from an already merged VCF", eval.ScoreMain},
	{"merge", "merge truth and test VCFs with SURVIVOR", merge.Main},
}

func Description() string {
	tmpl := `svbench version: {{version}}

svbench calls SURVIVOR to merge calls. 'Y' means it was found on your $PATH.

 *[{{survivor}}] SURVIVOR [required for eval and merge]

Available sub-commands are below. Each can be run with -h for additional help.

`
	t := fasttemplate.New(tmpl, "{{", "}}")

	vars := map[string]interface{}{
		"version":  svbench.Version,
		"survivor": shared.HasProg(merge.Prog),
	}
	return t.ExecuteString(vars)
}

func printProgs(wtr io.Writer) {
	fmt.Fprint(wtr, Description())
	l := 5
	for _, p := range progs {
		if len(p.name) > l {
			l = len(p.name)
		}
	}
	fmtr := "%-" + strconv.Itoa(l) + "s : %s\n"

	for _, p := range progs {
		fmt.Fprintf(wtr, fmtr, p.name, p.help)
	}
}

func get(name string) (*progPair, bool) {
	for i := range progs {
		if progs[i].name == name {
			return &progs[i], true
		}
	}
	return nil, false
}

func main() {
	if len(os.Args) < 2 {
		printProgs(os.Stdout)
		os.Exit(1)
	}
	p, ok := get(os.Args[1])
	if !ok {
		printProgs(os.Stdout)
		os.Exit(1)
	}
	// remove the prog name from the call
	os.Args = append(os.Args[:1], os.Args[2:]...)
	shared.Slogger.Printf("starting with version %s", svbench.Version)
	p.main()
}
