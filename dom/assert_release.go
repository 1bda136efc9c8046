//go:build !domdebug

package dom

const debugAssertions = false
