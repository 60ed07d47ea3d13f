// Package config loads ember project configuration.
//
// Configuration lives at the project root in ember.toml or ember.json. When
// both exist the TOML file wins. Every field is optional; missing values
// fall back to defaults.
//
// # ember.toml
//
//	name = "todo-preview"
//	demo = "todo"
//	log_level = "debug"
//
//	[preview]
//	addr = "localhost:7070"
//	title = "Todo"
//
//	[metrics]
//	enabled = true
//	namespace = "ember"
//
//	[tracing]
//	enabled = true
//	tracer = "github.com/vango-dev/ember"
//
//	[export]
//	target = "s3://snapshots/todo.html"
//	region = "eu-west-1"
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.Preview.Addr)
package config
