// File: internal/browser/driver_test.go
package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArg(t *testing.T) {
	cases := []struct {
		arg       string
		wantName  string
		wantValue any
	}{
		{"--disable-gpu", "disable-gpu", true},
		{"-single-process", "single-process", true},
		{"--proxy-server=localhost:8080", "proxy-server", "localhost:8080"},
		{"lang=en-US", "lang", "en-US"},
	}
	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			name, value := splitArg(tc.arg)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantValue, value)
		})
	}
}
