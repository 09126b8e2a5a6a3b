// Released under an MIT license. See LICENSE.

// Package repl evaluates privsh commands against the priv engine.
//
// The command language is deliberately tiny: open and close scopes, make
// ad-hoc owners, and read, write, and list private names through the
// current scope's token. It exists to poke at scope semantics, including
// the documented one: a token copied out of its block keeps working after
// the scope closes.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"

	"github.com/privscope/priv"
)

// ErrExit is returned by Eval when the user asked to leave.
var ErrExit = errors.New("exit")

// entry pairs a scope handle with the token privsh keeps for it. The token
// outlives a close on purpose; that is the behavior worth exploring.
type entry struct {
	scope *priv.Scope
	tok   *priv.Token
}

// Session holds the scopes and owners a privsh run has created.
type Session struct {
	out     io.Writer
	reg     *priv.Registry
	scopes  map[string]*entry
	order   []string
	owners  map[string]priv.Owner
	current string
}

// New creates a session whose output goes to out and whose scopes live in
// reg.
func New(out io.Writer, reg *priv.Registry) *Session {
	return &Session{
		out:    out,
		reg:    reg,
		scopes: map[string]*entry{},
		owners: map[string]priv.Owner{},
	}
}

// Eval evaluates one command line.
func (s *Session) Eval(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "scope":
		return s.scope(args)
	case "close":
		return s.close(args)
	case "use":
		return s.use(args)
	case "scopes":
		return s.listScopes()
	case "owner":
		return s.owner(args)
	case "owners":
		return s.listOwners()
	case "static":
		return s.static(args)
	case "set":
		return s.set(args)
	case "get":
		return s.get(args)
	case "del":
		return s.del(args)
	case "keys":
		return s.keys(args)
	case "help":
		return s.help()
	case "exit", "quit":
		return ErrExit
	}

	return fmt.Errorf("unknown command %q (try help)", cmd)
}

// Run evaluates commands from rd until it is exhausted, printing errors
// without stopping. Used for scripts and for piped stdin.
func (s *Session) Run(rd io.Reader) error {
	scanner := bufio.NewScanner(rd)

	for scanner.Scan() {
		err := s.Eval(scanner.Text())
		if errors.Is(err, ErrExit) {
			return nil
		}

		if err != nil {
			fmt.Fprintf(s.out, "error: %s\n", err)
		}
	}

	return scanner.Err()
}

func (s *Session) scope(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: scope NAME")
	}

	name := args[0]
	if _, ok := s.scopes[name]; ok {
		return fmt.Errorf("scope %q already exists", name)
	}

	sc := s.reg.NewScope()

	tok, err := sc.Token()
	if err != nil {
		return err
	}

	s.scopes[name] = &entry{scope: sc, tok: tok}
	s.order = append(s.order, name)
	s.current = name

	fmt.Fprintf(s.out, "scope %s opened\n", name)

	return nil
}

func (s *Session) close(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: close NAME")
	}

	e, ok := s.scopes[args[0]]
	if !ok {
		return fmt.Errorf("no scope %q", args[0])
	}

	e.scope.Close()

	fmt.Fprintf(s.out, "scope %s closed (its token still works)\n", args[0])

	return nil
}

func (s *Session) use(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: use NAME")
	}

	if _, ok := s.scopes[args[0]]; !ok {
		return fmt.Errorf("no scope %q", args[0])
	}

	s.current = args[0]

	return nil
}

func (s *Session) listScopes() error {
	for _, name := range s.order {
		e := s.scopes[name]

		state := "open"
		if !e.scope.Open() {
			state = "closed"
		}

		marker := " "
		if name == s.current {
			marker = "*"
		}

		fmt.Fprintf(s.out, "%s %s\t%s\t%s\n", marker, name, state, e.scope.ID())
	}

	return nil
}

func (s *Session) owner(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: owner NAME")
	}

	name := args[0]
	if _, ok := s.owners[name]; ok {
		return fmt.Errorf("owner %q already exists", name)
	}

	s.owners[name] = priv.NewOwner()

	fmt.Fprintf(s.out, "owner %s created\n", name)

	return nil
}

func (s *Session) listOwners() error {
	names := make([]string, 0, len(s.owners))
	for name := range s.owners {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(s.out, "%s\t%s\n", name, s.owners[name].Key())
	}

	return nil
}

func (s *Session) static(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: static KEY VALUE")
	}

	e, err := s.currentScope()
	if err != nil {
		return err
	}

	return e.scope.DeclareStatics(priv.Fields{args[0]: parseValue(args[1])})
}

func (s *Session) set(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set [OWNER.]KEY VALUE")
	}

	vars, key, err := s.target(args[0])
	if err != nil {
		return err
	}

	vars.Set(key, parseValue(args[1]))

	return nil
}

func (s *Session) get(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: get [OWNER.]KEY")
	}

	vars, key, err := s.target(args[0])
	if err != nil {
		return err
	}

	v, err := vars.Get(key)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, format(v))

	return nil
}

func (s *Session) del(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: del [OWNER.]KEY")
	}

	vars, key, err := s.target(args[0])
	if err != nil {
		return err
	}

	return vars.Delete(key)
}

func (s *Session) keys(args []string) error {
	ref, pattern := "", ""

	switch len(args) {
	case 0:
	case 1:
		if _, ok := s.owners[args[0]]; ok {
			ref = args[0] + "."
		} else {
			pattern = args[0]
		}
	case 2:
		ref, pattern = args[0]+".", args[1]
	default:
		return fmt.Errorf("usage: keys [OWNER] [PATTERN]")
	}

	vars, _, err := s.target(ref + "_")
	if err != nil {
		return err
	}

	for _, k := range vars.Keys() {
		if pattern != "" {
			ok, err := adapted.Match(pattern, k)
			if err != nil {
				return err
			}

			if !ok {
				continue
			}
		}

		fmt.Fprintln(s.out, k)
	}

	return nil
}

func (s *Session) help() error {
	fmt.Fprint(s.out, `commands:
  scope NAME            open a scope and make it current
  close NAME            close a scope (kept tokens keep working)
  use NAME              switch the current scope
  scopes                list scopes
  owner NAME            create an ad-hoc owner
  owners                list owners
  static KEY VALUE      declare a static on the current scope
  set [OWNER.]KEY VALUE write through the current scope's token
  get [OWNER.]KEY       read through the current scope's token
  del [OWNER.]KEY       delete a local entry
  keys [OWNER] [PATTERN] list visible names
  exit                  leave
`)

	return nil
}

func (s *Session) currentScope() (*entry, error) {
	if s.current == "" {
		return nil, fmt.Errorf("no current scope (try: scope NAME)")
	}

	return s.scopes[s.current], nil
}

// target resolves "KEY" to the current scope-level view and "OWNER.KEY" to
// the owner's view within the current scope.
func (s *Session) target(ref string) (*priv.Vars, string, error) {
	e, err := s.currentScope()
	if err != nil {
		return nil, "", err
	}

	name, key, ok := strings.Cut(ref, ".")
	if !ok {
		return e.tok.Vars(), ref, nil
	}

	owner, found := s.owners[name]
	if !found {
		return nil, "", fmt.Errorf("no owner %q", name)
	}

	vars, err := e.tok.Of(owner)
	if err != nil {
		return nil, "", err
	}

	return vars, key, nil
}

// parseValue keeps privsh's literals simple: bools, integers, floats, and
// strings, optionally quoted.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}

	return s
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return adapted.CanonicalString(x)
	case *priv.Callable:
		return "(callable " + x.Name() + ")"
	}

	return fmt.Sprint(v)
}
