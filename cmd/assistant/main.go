package main

import "github.com/cleitonmarx/symbiont-ai-assistant/internal/app"

func main() {
	err := app.NewAssistantApp().
		Introspect(&app.ReportLoggerIntrospector{}).
		Run()
	if err != nil {
		panic(err)
	}
}
