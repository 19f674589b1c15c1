package main

import (
	"fmt"
	"os"

	"github.com/gekko3d/blaster"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "TOML config file")
	debug := pflag.BoolP("debug", "d", false, "enable debug logging")
	watch := pflag.BoolP("watch", "w", false, "reload the config file when it changes")
	headless := pflag.Bool("headless", false, "run without a window")
	frames := pflag.Int("frames", 0, "stop after this many frames (0 runs until quit)")
	pflag.Parse()

	cfg := blaster.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = blaster.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *headless && *frames <= 0 {
		fmt.Fprintln(os.Stderr, "--headless needs --frames")
		os.Exit(2)
	}

	app := blaster.NewAppBuilder().
		UseModule(blaster.DefaultModules(cfg, blaster.Options{
			ConfigPath: *configPath,
			Watch:      *watch,
			Debug:      *debug,
			Headless:   *headless,
		})...).
		Build()

	if *frames <= 0 {
		app.Run()
		return
	}
	for i := 0; i < *frames && !app.Quitting(); i++ {
		app.Tick()
	}
	app.Shutdown()
}
