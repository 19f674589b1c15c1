package blaster

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Quit stops App.Run after the current tick.
func (cmd *Commands) Quit() {
	cmd.app.quitting = true
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
