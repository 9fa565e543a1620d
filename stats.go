// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package presolve

import "github.com/irifrance/presolve/internal/stats"

// EnableStats turns on per-rule-name logging and counting.
func (c *Context) EnableStats() {
	if c.Stats == nil {
		c.Stats = stats.NewRules()
	}
	c.Stats.Enabled = true
}

// UpdateRuleStats records one application of the named rewrite rule. Rewrite
// rules outside this package call it directly; internal mutators call it
// through their own Store*/Substitute* methods instead.
func (c *Context) UpdateRuleStats(name string) {
	if c.Stats == nil {
		c.Stats = stats.NewRules()
	}
	c.Stats.Update(name)
}

// DrainModifiedDomains returns every variable whose domain changed since the
// last call, and clears the set. A presolve driver calls this once per
// sweep to know which rewrite rules to re-queue.
func (c *Context) DrainModifiedDomains() []int32 {
	return c.Modified.Drain()
}
