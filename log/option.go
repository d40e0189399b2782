package log

// Option transforms a logger configuration. Options are applied in order,
// so a later option overrides an earlier one; nil options are skipped.
type Option func(config) config

func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}
