// Package config loads engine settings from YAML documents.
//
// A configuration file looks like:
//
//	callSlowAsyncActionAfter: 250ms   # or an integer number of milliseconds
//	context:
//	  tenant: acme
//	history:
//	  capacity: 500
//	logging:
//	  level: debug
//	  format: text
//	  addSource: false
//
// Every key is optional. Loaded files are applied on top of
// engine.DefaultConfig through File.Apply.
package config
