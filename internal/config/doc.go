// Package config provides configuration parsing for quasar.
//
// The configuration is stored in quasar.yaml in the working directory. The
// file is optional: missing settings take defaults, and a few settings can
// be overridden from the environment.
//
// # Configuration File Structure
//
//	app: todo
//	server:
//	  host: localhost
//	  port: 7070
//	  metricsPath: /metrics
//	log:
//	  level: debug
//	  format: json
//	export:
//	  bucket: quasar-snapshots
//	  prefix: demos/
//	  region: eu-west-1
//	  endpoint: http://localhost:9000
//	  pathStyle: true
//
// # Environment
//
//	QUASAR_ADDR       host:port, overrides server.host and server.port
//	QUASAR_APP        overrides app
//	QUASAR_LOG_LEVEL  overrides log.level
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
