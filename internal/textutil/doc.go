// Package textutil provides text helpers for presenting file names in logs.
package textutil
