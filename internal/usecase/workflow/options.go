package workflow

import "time"

type settings struct {
	now func() time.Time
}

type Option func(*settings)

// Clock replaces time.Now, for idle tracking.
func Clock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}
