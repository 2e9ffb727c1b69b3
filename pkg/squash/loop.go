package squash

import (
	"fmt"
	"sort"
)

// LoopScope is the handle owning one generated loop's textual extent.
// Obtain it from BeginLoop and close it with End exactly once, in reverse
// order of opening; defer the End call right after BeginLoop so the loop
// closes on every exit path.
type LoopScope struct {
	ctx    *Context
	level  int
	idxVar string
	vars   []*Symbol
	prev   map[*Symbol]string
	closed bool
}

// Vars returns the observable symbols bound by this loop.
func (s *LoopScope) Vars() []*Symbol { return s.vars }

// IndexVar returns the loop's index variable name.
func (s *LoopScope) IndexVar() string { return s.idxVar }

// BeginLoop opens a loop running from 0 to n's output size and rebinds
// every registered vector observable that n depends on to a buffer access
// indexed by the new loop variable. When this is the outermost loop the
// current code-body position is recorded so hoisted declarations can be
// spliced there once the loop closes.
func (c *Context) BeginLoop(n Node) *LoopScope {
	if c.loopLevel == 0 {
		c.splicePtr = len(c.code)
	}
	c.loopLevel++

	idx := fmt.Sprintf("loopIdx%d", c.loopVarIdx)
	c.loopVarIdx++
	c.usedNames[idx] = true

	scope := &LoopScope{ctx: c, level: c.loopLevel, idxVar: idx, prev: make(map[*Symbol]string)}
	for sym, offset := range c.vecObs {
		if !n.DependsOn(sym) {
			continue
		}
		if old, ok := c.results[sym]; ok {
			scope.prev[sym] = old
		}
		c.results[sym] = fmt.Sprintf("obs[%d + %s]", offset, idx)
		scope.vars = append(scope.vars, sym)
	}
	sort.Slice(scope.vars, func(i, j int) bool {
		return scope.vars[i].Name() < scope.vars[j].Name()
	})

	c.code += fmt.Sprintf("for (int %s = 0; %s < %d; %s++) {\n", idx, idx, c.OutputSize(n), idx)
	return scope
}

// End emits the loop-closing statement and restores the nesting level.
// Each observable the loop bound is restored to whatever it resolved to
// before this loop opened, so an enclosing loop's index access comes back
// into effect; bindings with no prior value are removed because the index
// variable they reference no longer exists past this point. When the
// outermost loop finishes, the hoisted declarations accumulated in the
// temp scope are spliced into the code body at the position recorded by
// BeginLoop.
func (s *LoopScope) End() error {
	c := s.ctx
	if s.closed {
		return fmt.Errorf("%w: scope of %s closed twice", ErrScopeLeak, s.idxVar)
	}
	if c.loopLevel != s.level {
		return fmt.Errorf("%w: closing %s at level %d, expected %d",
			ErrScopeLeak, s.idxVar, c.loopLevel, s.level)
	}
	s.closed = true

	c.code += "}\n"
	c.loopLevel--
	for _, sym := range s.vars {
		if old, ok := s.prev[sym]; ok {
			c.results[sym] = old
		} else {
			delete(c.results, sym)
		}
	}

	if c.loopLevel == 0 {
		c.code = c.code[:c.splicePtr] + c.tempScope + c.code[c.splicePtr:]
		c.tempScope = ""
		c.splicePtr = -1
	}
	return nil
}
