//go:build js && wasm

package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/san-kum/chaospanel/internal/logging"
	"github.com/san-kum/chaospanel/internal/panel"
	"github.com/san-kum/chaospanel/internal/pendulum"
	"github.com/san-kum/chaospanel/internal/webui"
)

func main() {
	logger, err := logging.New(os.Stderr, "info", "text")
	if err != nil {
		logger = slog.Default()
	}
	logger.Info("chaospanel wasm starting")

	doc, err := webui.NewDocument("controls")
	if err != nil {
		logger.Error("panel not built", "err", err)
		return
	}

	p := panel.New(webui.NewModuleStore(logger), doc, panel.WithLogger(logger))
	if err := p.Assemble(pendulum.ExtendedDefinitions()); err != nil {
		logger.Error("panel not built", "err", err)
		return
	}
	logger.Info("panel built", "controls", p.Len())
	doc.ReleaseOn(js.Global(), "pagehide")

	js.Global().Set("chaospanelReady", js.FuncOf(func(this js.Value, args []js.Value) any {
		return true
	}))

	select {}
}
