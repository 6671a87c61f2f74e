// Package config loads the blockpaste configuration file.
//
// The file is YAML. Loading reads the file, applies defaults for every
// field left unset, applies BLOCKPASTE_* environment overrides and then
// validates the result:
//
//	plugins_path: ./plugins
//	log_level: info
//	log_format: text
//	max_depth: 512
//	output: json
//	serve:
//	  address: ":8080"
//	  read_timeout: 10s
//	  max_body_bytes: 4194304
//	  watch: true
//	publish:
//	  url: http://localhost:3000
//	  namespace: /editor
//	  event: blocks:import
//	  ack_event: blocks:imported
//	  timeout: 5s
package config
