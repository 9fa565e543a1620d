// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/irifrance/presolve"
	"github.com/irifrance/presolve/model"
)

var (
	stats = flag.Bool("stats", false, "log rule-application counts to stderr")
	out   = flag.String("o", "", "write the canonicalized model here instead of stdout")
)

var usage = `%s loads a JSON model, canonicalizes its objective, and writes
it back out.

%s takes the following flags.

`

func main() {
	flag.Usage = func() {
		p := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, usage, p, p)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if e := run(flag.Arg(0)); e != nil {
		log.Fatalf("presolvectl: %s\n", e)
	}
}

func run(path string) error {
	f, e := os.Open(path)
	if e != nil {
		return e
	}
	defer f.Close()

	m, e := model.Decode(f)
	if e != nil {
		return fmt.Errorf("decode %s: %w", path, e)
	}

	ctx := presolve.NewContextFromModel(m)
	if *stats {
		ctx.EnableStats()
	}
	if ctx.IsUnsat {
		return fmt.Errorf("model is trivially unsat after loading domains")
	}
	if !ctx.CanonicalizeObjective() {
		return fmt.Errorf("model is unsat: objective domain is infeasible")
	}
	ctx.SyncVariableDomains()
	ctx.WriteObjectiveToProto()

	w := os.Stdout
	if *out != "" {
		f, e := os.Create(*out)
		if e != nil {
			return e
		}
		defer f.Close()
		w = f
	}
	return model.Encode(w, ctx.Model)
}
