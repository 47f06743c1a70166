package app

// cleanup collects release functions while a front end is being built and
// runs them in reverse order when construction fails part way.
type cleanup struct {
	fns []func()
}

func (c *cleanup) push(fn func()) {
	c.fns = append(c.fns, fn)
}

// run calls the collected functions last first and forgets them.
func (c *cleanup) run() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
	c.fns = nil
}
