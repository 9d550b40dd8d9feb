//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("RulebridgeGenerate", js.FuncOf(generate))
	js.Global().Set("RulebridgeActionText", js.FuncOf(actionText))

	// Keep WASM running
	<-make(chan struct{})
}
