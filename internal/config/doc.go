// Package config loads datajack.yaml, the file telling the CLI where the
// fixture collections live and how references are shaped.
//
//	version: "1"
//	sources:
//	  - type: json
//	    path: ./fixtures
//	  - type: spreadsheet
//	    path: ./fixtures/data.xlsx
//	    descent: lenient
//	references:
//	  max_depth: 64
//	generator:
//	  enabled: true
//	log:
//	  level: info
package config
