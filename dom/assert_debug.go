//go:build domdebug

package dom

const debugAssertions = true
