package jtrace

// The binary sink's intern-table lock is held only for lookup-or-insert;
// the corresponding *-Def record and the event record itself are written
// outside that lock, under the writer's own internal lock (see
// DESIGN.md "intern-table lock scope"). active is read without further
// synchronization here because Init/Fini bracket all tracing activity and
// flags are frozen for the lifetime of an active trace (spec §3 invariant).

func binaryEnter(c *core, tc *threadContext, ts int64, name string) {
	funcID := internFunction(c, name)
	if err := c.binaryWriter.WriteEnter(ts, funcID, tc.processID); err != nil {
		c.logger.Warningf("jtrace: binary enter record for %q failed: %s", name, err)
	}
}

func binaryLeave(c *core, tc *threadContext, ts int64, name string) {
	funcID, ok := c.functionIDs.lookup(name)
	if !ok {
		// Defensive: a Leave without a prior Enter-side intern should not
		// happen given the balance invariant, but tracing must never fail
		// the caller, so fall back to interning it now.
		funcID = internFunction(c, name)
	}
	if err := c.binaryWriter.WriteLeave(ts, funcID, tc.processID); err != nil {
		c.logger.Warningf("jtrace: binary leave record for %q failed: %s", name, err)
	}
}

func internFunction(c *core, name string) uint64 {
	id, created := c.functionIDs.lookupOrCreate(name)
	if created {
		if err := c.binaryWriter.WriteFunctionDef(id, name); err != nil {
			c.logger.Warningf("jtrace: binary function-def record for %q failed: %s", name, err)
		}
	}
	return id
}

func binaryFileBegin(c *core, tc *threadContext, ts int64, path string) {
	id, created := c.fileIDs.lookupOrCreate(path)
	if created {
		if err := c.binaryWriter.WriteFileDef(id, path); err != nil {
			c.logger.Warningf("jtrace: binary file-def record for %q failed: %s", path, err)
		}
	}
	if err := c.binaryWriter.WriteFileBegin(ts, tc.processID, id); err != nil {
		c.logger.Warningf("jtrace: binary file-begin record for %q failed: %s", path, err)
	}
}

func binaryFileEnd(c *core, tc *threadContext, ts int64, path string, op FileOp, length int64) {
	id, ok := c.fileIDs.lookup(path)
	if !ok {
		id, _ = c.fileIDs.lookupOrCreate(path)
	}
	if err := c.binaryWriter.WriteFileEnd(ts, tc.processID, id, int(op.binaryCode()), length); err != nil {
		c.logger.Warningf("jtrace: binary file-end record for %q failed: %s", path, err)
	}
}

func binaryCounter(c *core, tc *threadContext, ts int64, name string, value float64) {
	id, created := c.counterIDs.lookupOrCreate(name)
	if created {
		if err := c.binaryWriter.WriteCounterDef(id, name); err != nil {
			c.logger.Warningf("jtrace: binary counter-def record for %q failed: %s", name, err)
		}
	}
	if err := c.binaryWriter.WriteCounterSample(ts, tc.processID, id, value); err != nil {
		c.logger.Warningf("jtrace: binary counter-sample record for %q failed: %s", name, err)
	}
}

// emitProcessBegin / emitProcessEnd bracket a thread context's lifetime in
// the binary sink, per spec §4.3. Called from context.go at context
// creation and at amortized-sweep eviction time respectively.
func emitProcessBegin(tc *threadContext) {
	c := active
	if c == nil || c.binaryWriter == nil {
		return
	}
	ts := c.timestampMicros()
	if err := c.binaryWriter.WriteProcessDef(tc.processID, tc.displayName); err != nil {
		c.logger.Warningf("jtrace: binary process-def record failed: %s", err)
	}
	if err := c.binaryWriter.WriteProcessBegin(ts, tc.processID); err != nil {
		c.logger.Warningf("jtrace: binary process-begin record failed: %s", err)
	}
}

func emitProcessEnd(tc *threadContext) {
	c := active
	if c == nil || c.binaryWriter == nil {
		return
	}
	ts := c.timestampMicros()
	if err := c.binaryWriter.WriteProcessEnd(ts, tc.processID); err != nil {
		c.logger.Warningf("jtrace: binary process-end record failed: %s", err)
	}
}
