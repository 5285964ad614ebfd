package core

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Rule overrides the cipher or editor for targets it matches. A rule matches
// when any of its Paths globs matches (or Paths is empty) and its Match
// expression evaluates to true (or Match is empty).
//
// Globs are tested against both the base name and the slash separated path
// of the target. Match expressions see these variables:
//
//	path: absolute path of the target
//	name: base name, e.g. "notes.txt.gpg"
//	ext:  extension including the dot, e.g. ".gpg"
//	dir:  directory containing the target
type Rule struct {
	Paths  []string `yaml:"paths"`
	Match  string   `yaml:"match"`
	Cipher string   `yaml:"cipher"`
	Editor string   `yaml:"editor"`
}

// Profile is the effective per-target setting after applying rules.
type Profile struct {
	Cipher string
	Editor string
}

func (r Rule) Validate() error {
	for _, p := range r.Paths {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	if r.Cipher != "" {
		if err := ValidateCipher(r.Cipher); err != nil {
			return err
		}
	}

	if _, err := compileExpr(r.Match); err != nil {
		return fmt.Errorf("invalid match expression: %w", err)
	}

	return nil
}

// Matches reports whether the rule applies to the absolute path target.
func (r Rule) Matches(target string) (bool, error) {
	if len(r.Paths) > 0 {
		name := filepath.Base(target)
		slashed := filepath.ToSlash(target)

		found := false
		for _, p := range r.Paths {
			byName, err := doublestar.Match(p, name)
			if err != nil {
				return false, fmt.Errorf("invalid glob pattern %q: %w", p, err)
			}
			byPath, _ := doublestar.Match(p, slashed)
			if byName || byPath {
				found = true
				break
			}
		}

		if !found {
			return false, nil
		}
	}

	program, err := compileExpr(r.Match)
	if err != nil {
		return false, err
	}

	return evalCompiledExpr(program, map[string]any{
		"path": target,
		"name": filepath.Base(target),
		"ext":  filepath.Ext(target),
		"dir":  filepath.Dir(target),
	})
}

// ProfileFor resolves the cipher and editor for target. Rules are applied in
// order and later matches win.
func (c ConfigFile) ProfileFor(target string) (Profile, error) {
	profile := Profile{
		Cipher: c.Cipher,
		Editor: c.Editor,
	}

	for i, r := range c.Rules {
		ok, err := r.Matches(target)
		if err != nil {
			return profile, fmt.Errorf("rule %d: %w", i, err)
		}
		if !ok {
			continue
		}

		if r.Cipher != "" {
			profile.Cipher = r.Cipher
		}
		if r.Editor != "" {
			profile.Editor = r.Editor
		}
	}

	return profile, nil
}

// compileExpr compiles a rule expression, the empty expression matches everything
func compileExpr(code string) (*vm.Program, error) {
	if code == "" {
		code = "true"
	}

	return expr.Compile(code, expr.AsBool(), expr.Env(map[string]any{
		"path": "",
		"name": "",
		"ext":  "",
		"dir":  "",
	}))
}

func evalCompiledExpr(program *vm.Program, env map[string]any) (bool, error) {
	output, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}

	result, ok := output.(bool)
	if !ok {
		return false, errors.New("match expression did not evaluate to a boolean")
	}

	return result, nil
}
