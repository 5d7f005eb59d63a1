//go:build js && wasm

// Command gemdict-wasm exposes the dictionary to a browser host. Loading
// the module registers a global defineWord(word, apiKey) function that
// returns a Promise resolving to {word, pronunciation, definition,
// examples, image} or rejecting with an error message.
package main

import (
	"context"
	"syscall/js"

	"codeberg.org/snonux/gemdict/internal/dictionary"
)

func main() {
	js.Global().Set("defineWord", js.FuncOf(defineWord))

	// Keep the exported function alive.
	select {}
}

func defineWord(_ js.Value, args []js.Value) any {
	word, apiKey := stringArg(args, 0), stringArg(args, 1)

	executor := js.FuncOf(func(_ js.Value, fns []js.Value) any {
		resolve, reject := fns[0], fns[1]

		// Network calls block, and blocking inside a js callback deadlocks
		// the event loop.
		go func() {
			def, err := dictionary.DefineWord(context.Background(), word, apiKey)
			if err != nil {
				reject.Invoke(err.Error())
				return
			}
			resolve.Invoke(js.ValueOf(def.Map()))
		}()
		return nil
	})
	defer executor.Release()

	return js.Global().Get("Promise").New(executor)
}

func stringArg(args []js.Value, i int) string {
	if i >= len(args) || args[i].Type() != js.TypeString {
		return ""
	}
	return args[i].String()
}
