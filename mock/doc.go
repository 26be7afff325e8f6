// Package mock provides hand-written mock implementations of the domain
// interfaces for use in tests.
package mock
