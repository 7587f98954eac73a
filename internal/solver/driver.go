// Package solver drives an external SMT-LIB 2 solver process (Z3 by
// default) through a small transactional interface: declarations,
// assertions, scoped push/pop frames, check-sat, and value extraction.
// The coupling to the solver is text-level over stdio, so any SMT-LIB 2
// incremental solver is swappable, and a tee log doubles as a
// byte-for-byte reproducibility artifact of the interaction.
package solver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/lhaig/mikino/internal/term"

	"github.com/google/uuid"
)

// Status is the solver's verdict on a check-sat query.
type Status int

const (
	Sat Status = iota
	Unsat
	Unknown
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case Unknown:
		return "unknown"
	default:
		return "<invalid status>"
	}
}

// Model is the raw response of a get-value query: declared symbol name to
// its value expression, unparsed. The driver does not know about Sorts or
// Terms (it only knows SMT-LIB text); internal/check matches each name
// back to its declared sort and parses the value there.
type Model map[string]SExpr

type declKey struct {
	name  string
	state int
}

// Driver owns one solver subprocess. It is not safe for concurrent use:
// per §5, drivers are not shared across threads.
type Driver struct {
	cfg  Config
	log  hclog.Logger
	cmd  *exec.Cmd
	in   io.WriteCloser
	out  *bufio.Reader
	tee  io.WriteCloser
	teeF *os.File

	declared map[declKey]struct{}
	frames   []map[declKey]struct{}
}

// New spawns the solver subprocess and configures incremental mode:
// produce-models is enabled and no logic is set, so mixed Int/Rat/Bool
// problems are accepted.
func New(cfg Config) (*Driver, error) {
	cmd := exec.Command(cfg.Bin, cfg.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("solver: creating stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("solver: creating stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("solver: starting %q: %w", cfg.Bin, err)
	}

	d := &Driver{
		cfg:      cfg,
		log:      cfg.Logger,
		cmd:      cmd,
		in:       stdin,
		out:      bufio.NewReader(stdout),
		declared: make(map[declKey]struct{}),
		frames:   []map[declKey]struct{}{make(map[declKey]struct{})},
	}

	if cfg.TeeDir != "" {
		if err := os.MkdirAll(cfg.TeeDir, 0o755); err != nil {
			_ = d.cmd.Process.Kill()
			return nil, fmt.Errorf("solver: creating SMT log directory %q: %w", cfg.TeeDir, err)
		}
		name := cfg.TeeName
		if name == "" {
			name = "session-" + uuid.NewString() + ".smt2"
		}
		f, err := os.Create(filepath.Join(cfg.TeeDir, name))
		if err != nil {
			_ = d.cmd.Process.Kill()
			return nil, fmt.Errorf("solver: opening SMT log %q: %w", name, err)
		}
		d.teeF = f
		d.tee = f
	}

	if err := d.writeLine("(set-option :produce-models true)"); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// NewWithIO builds a Driver over an arbitrary transport instead of a
// spawned subprocess, so callers (and this package's own tests) can
// exercise the push/pop and protocol-framing logic against a scripted
// fake without a z3 binary on PATH.
func NewWithIO(in io.Writer, out io.Reader, cfg Config) *Driver {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	return &Driver{
		cfg:      cfg,
		log:      cfg.Logger,
		in:       nopWriteCloser{in},
		out:      bufio.NewReader(out),
		declared: make(map[declKey]struct{}),
		frames:   []map[declKey]struct{}{make(map[declKey]struct{})},
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (d *Driver) writeLine(line string) error {
	d.log.Trace("emit", "line", line)
	if d.tee != nil {
		fmt.Fprintln(d.tee, line)
	}
	if _, err := fmt.Fprintln(d.in, line); err != nil {
		return fmt.Errorf("solver: writing %q: %w", line, err)
	}
	return nil
}

// DeclareVars emits a declare-const for every variable at state index s,
// skipping any (var, s) pair already declared in the currently active
// scope.
func (d *Driver) DeclareVars(vars []term.Decl, s int) error {
	top := d.frames[len(d.frames)-1]
	for _, v := range vars {
		key := declKey{v.Name, s}
		if _, ok := d.declared[key]; ok {
			continue
		}
		line := fmt.Sprintf("(declare-const %s %s)", term.StateSymbol(v.Name, s), v.Sort)
		if err := d.writeLine(line); err != nil {
			return err
		}
		d.declared[key] = struct{}{}
		top[key] = struct{}{}
	}
	return nil
}

// Assert emits an assert of t with all free variables pinned to state s
// (and any pre shifted to s-1).
func (d *Driver) Assert(t term.Term, s int) error {
	return d.writeLine(fmt.Sprintf("(assert %s)", term.EmitAt(t, s)))
}

// Push opens a new scoped assertion frame.
func (d *Driver) Push() error {
	if err := d.writeLine("(push 1)"); err != nil {
		return err
	}
	d.frames = append(d.frames, make(map[declKey]struct{}))
	d.log.Debug("push", "depth", len(d.frames))
	return nil
}

// Pop closes the most recently opened frame, invalidating every assertion
// and declaration issued since the matching Push. Calling Pop with no
// matching Push is a programmer error and is fatal.
func (d *Driver) Pop() error {
	if len(d.frames) == 1 {
		return fmt.Errorf("solver: pop with no matching push")
	}
	if err := d.writeLine("(pop 1)"); err != nil {
		return err
	}
	top := d.frames[len(d.frames)-1]
	for key := range top {
		delete(d.declared, key)
	}
	d.frames = d.frames[:len(d.frames)-1]
	d.log.Debug("pop", "depth", len(d.frames))
	return nil
}

// CheckSat issues check-sat and classifies the solver's reply.
func (d *Driver) CheckSat() (Status, error) {
	if err := d.writeLine("(check-sat)"); err != nil {
		return Unknown, err
	}
	resp, err := d.readResponse()
	if err != nil {
		return Unknown, fmt.Errorf("solver: check-sat: %w", err)
	}
	switch strings.TrimSpace(resp) {
	case "sat":
		return Sat, nil
	case "unsat":
		return Unsat, nil
	case "unknown":
		return Unknown, nil
	default:
		return Unknown, fmt.Errorf("solver: unexpected check-sat reply %q", resp)
	}
}

// GetValues requests values for the given symbols after a Sat result.
func (d *Driver) GetValues(symbols []string) (Model, error) {
	if len(symbols) == 0 {
		return Model{}, nil
	}
	if err := d.writeLine(fmt.Sprintf("(get-value (%s))", strings.Join(symbols, " "))); err != nil {
		return nil, err
	}
	resp, err := d.readResponse()
	if err != nil {
		return nil, fmt.Errorf("solver: get-value: %w", err)
	}
	exprs, err := ParseSExprs(resp)
	if err != nil || len(exprs) != 1 || exprs[0].IsAtom() {
		return nil, fmt.Errorf("solver: unparsable get-value reply %q", resp)
	}
	model := make(Model, len(exprs[0].List))
	for _, pair := range exprs[0].List {
		if pair.IsAtom() || len(pair.List) != 2 {
			return nil, fmt.Errorf("solver: malformed get-value entry %q", pair.String())
		}
		model[pair.List[0].Atom] = pair.List[1]
	}
	return model, nil
}

// readResponse reads one whitespace-delimited atom or one balanced
// parenthesized expression from the solver's stdout, optionally bounded
// by cfg.Timeout.
func (d *Driver) readResponse() (string, error) {
	if d.cfg.Timeout <= 0 {
		return d.readResponseNow()
	}
	type result struct {
		s   string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := d.readResponseNow()
		ch <- result{s, err}
	}()
	select {
	case r := <-ch:
		return r.s, r.err
	case <-time.After(d.cfg.Timeout):
		return "", fmt.Errorf("timed out waiting for solver response")
	}
}

func (d *Driver) readResponseNow() (string, error) {
	var sb strings.Builder
	depth := 0
	started := false
	for {
		r, _, err := d.out.ReadRune()
		if err != nil {
			if started {
				return sb.String(), nil
			}
			return "", err
		}
		if !started {
			if isSpace(r) {
				continue
			}
			started = true
		}
		sb.WriteRune(r)
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth == 0 {
				return sb.String(), nil
			}
		case depth == 0 && isSpace(r):
			return strings.TrimRight(sb.String(), " \t\r\n"), nil
		}
	}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

// Close sends exit, closes the transport, and reaps the child process.
// A failure to send exit is ignored; errors from closing stdin, waiting
// for the child, and closing the SMT log are all collected rather than
// discarded, since draining a child on a failure path can hit more than
// one independent problem.
func (d *Driver) Close() error {
	var result *multierror.Error

	_ = d.writeLine("(exit)")
	if err := d.in.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("solver: closing stdin: %w", err))
	}
	if d.cmd != nil && d.cmd.Process != nil {
		if err := d.cmd.Wait(); err != nil {
			result = multierror.Append(result, fmt.Errorf("solver: waiting for process: %w", err))
		}
	}
	if d.teeF != nil {
		if err := d.teeF.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("solver: closing SMT log: %w", err))
		}
	}
	return result.ErrorOrNil()
}
