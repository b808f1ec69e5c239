package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// Create an instance of the app structure
	app, err := NewApp()
	if err != nil {
		println("Error initializing app:", err.Error())
		return
	}

	// Backup in case OnShutdown doesn't get called
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		fmt.Printf("Received signal: %v, initiating shutdown\n", sig)
		app.shutdown(context.Background())
	}()

	appMenu := menu.NewMenu()

	// On macOS, add the standard app menu
	if runtime.GOOS == "darwin" {
		appMenu.Append(menu.AppMenu())
	}

	fileMenu := menu.NewMenu()
	fileMenu.AddText("Reload Userlist", keys.CmdOrCtrl("R"), func(_ *menu.CallbackData) {
		if err := app.ReloadUserlist(); err != nil {
			fmt.Printf("Failed to reload userlist: %v\n", err)
		}
	})
	appMenu.Append(menu.SubMenu("File", fileMenu))
	appMenu.Append(menu.EditMenu())
	appMenu.Append(menu.WindowMenu())

	err = wails.Run(&options.App{
		Title:  "Metadata Editor",
		Width:  1024,
		Height: 768,
		Menu:   appMenu,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
