// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations of the jobmux collaborator contracts for testing
// and development. Scripts drive I/O step outcomes deterministically and
// every lifecycle call is counted.
package fake
