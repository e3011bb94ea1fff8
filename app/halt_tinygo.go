//go:build tinygo

package app

func halt(any) { select {} }
