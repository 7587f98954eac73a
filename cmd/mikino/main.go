// Command mikino runs base, step, and BMC checks over a built-in example
// system and prints the resulting verdict. It is a thin illustrative
// driver, not the surface-syntax CLI front end: the system comes from
// internal/sys/fixtures rather than a parsed script file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/lhaig/mikino/internal/check"
	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys"
	"github.com/lhaig/mikino/internal/sys/fixtures"
)

var systems = map[string]func() *sys.Sys{
	"counter":        fixtures.Counter,
	"counter-unsafe": fixtures.CounterUnsafeInit,
	"counter-bmc":    fixtures.CounterBoundedUnsound,
	"stopwatch":      fixtures.Stopwatch,
	"unknown-op":     fixtures.UnknownOp,
}

func main() {
	z3Bin := flag.String("z3", "z3", "solver binary to invoke")
	maxK := flag.Int("max-k", 10, "inclusive upper bound on BMC depth (-1 for unbounded)")
	smtLog := flag.String("smt-log", "", "directory to mirror the SMT-LIB session into (empty disables logging)")
	verbose := flag.Bool("v", false, "enable debug logging")
	system := flag.String("system", "counter", "built-in system to check: counter, counter-unsafe, counter-bmc, stopwatch, unknown-op")
	flag.Parse()

	build, ok := systems[*system]
	if !ok {
		fmt.Fprintf(os.Stderr, "mikino: unknown system %q\n", *system)
		os.Exit(2)
	}

	level := hclog.Warn
	if *verbose {
		level = hclog.Debug
	}
	log := hclog.New(&hclog.LoggerOptions{Name: "mikino", Level: level})

	if err := run(build(), *z3Bin, *smtLog, *maxK, log); err != nil {
		fmt.Fprintf(os.Stderr, "mikino: %v\n", err)
		os.Exit(1)
	}
}

func run(s *sys.Sys, z3Bin, smtLog string, maxK int, log hclog.Logger) error {
	newDriver := func() (*solver.Driver, error) {
		opts := []solver.Option{
			solver.WithBin(z3Bin, "-in"),
			solver.WithTimeout(30 * time.Second),
			solver.WithLogger(log.Named("solver")),
		}
		if smtLog != "" {
			opts = append(opts, solver.WithTee(smtLog, ""))
		}
		return solver.New(solver.NewConfig(opts...))
	}
	closeDriver := func(d *solver.Driver) {
		if err := d.Close(); err != nil {
			log.Warn("error closing solver session", "error", err)
		}
	}

	// Base, step, and BMC each get their own solver session: each check
	// asserts facts (init, a candidate's antecedent, trans) outside any
	// push/pop frame it pops before returning, so sharing one session
	// across checks would leave an earlier check's assertions live
	// during a later one.
	baseD, err := newDriver()
	if err != nil {
		return fmt.Errorf("starting solver for base check: %w", err)
	}
	defer closeDriver(baseD)
	baseRes, err := check.Base(baseD, s, log)
	if err != nil {
		return fmt.Errorf("base check: %w", err)
	}

	stepD, err := newDriver()
	if err != nil {
		return fmt.Errorf("starting solver for step check: %w", err)
	}
	defer closeDriver(stepD)
	stepRes, err := check.Step(stepD, s, log)
	if err != nil {
		return fmt.Errorf("step check: %w", err)
	}

	seed, err := baseRes.MergeWithStep(stepRes)
	if err != nil {
		return fmt.Errorf("merging base and step results: %w", err)
	}

	final := seed
	if !seed.AllFalsified() {
		bmcD, err := newDriver()
		if err != nil {
			return fmt.Errorf("starting solver for bmc: %w", err)
		}
		defer closeDriver(bmcD)
		bmc := check.NewBmc(bmcD, s, seed, log)
		final, err = bmc.Run(maxK)
		if err != nil {
			return fmt.Errorf("bmc: %w", err)
		}
	}

	verdict := check.Summarize(baseRes, stepRes, final)
	printVerdict(verdict)
	return nil
}

func printVerdict(v check.Verdict) {
	fmt.Printf("verdict: %s\n", v.Status)
	if len(v.Inductive) > 0 {
		fmt.Printf("  inductive:       %v\n", v.Inductive)
	}
	if len(v.BaseFalsified) > 0 {
		fmt.Printf("  base falsified:  %v\n", v.BaseFalsified)
	}
	if len(v.StepFalsified) > 0 {
		fmt.Printf("  non-inductive:   %v\n", v.StepFalsified)
	}
	if len(v.BmcFalsified) > 0 {
		fmt.Printf("  bmc falsified:   %v\n", v.BmcFalsified)
	}
	if len(v.BmcUnresolved) > 0 {
		fmt.Printf("  bmc unresolved:  %v\n", v.BmcUnresolved)
	}
}
