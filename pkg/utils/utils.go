// Package utils holds small helpers shared across smash that don't
// belong to any one package.
package utils

import (
	"bytes"
	"io"
)

// SafeTruncate truncates str to limit characters, returning it unchanged
// if it's already shorter. Used to shorten a full commit hash down to
// the 7 characters shown as the build version.
func SafeTruncate(str string, limit int) string {
	if len(str) > limit {
		return str[0:limit]
	}
	return str
}

type multiErr []error

func (m multiErr) Error() string {
	var b bytes.Buffer
	b.WriteString("encountered multiple errors:")
	for _, err := range m {
		b.WriteString("\n\t... " + err.Error())
	}
	return b.String()
}

// CloseMany closes every closer, continuing past individual failures,
// and reports them all together if any occurred.
func CloseMany(closers []io.Closer) error {
	errs := make([]error, 0, len(closers))
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return multiErr(errs)
	}
	return nil
}
