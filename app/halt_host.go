//go:build !tinygo

package app

func halt(v any) { panic(v) }
